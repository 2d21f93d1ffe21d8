package ipv6

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Expanded returns the fully expanded form: each word as 4-digit
// lowercase hex, colon-joined, with no compression.
func (w Word128) Expanded() string {
	parts := make([]string, Words)
	for i, v := range w {
		parts[i] = fmt.Sprintf("%04x", v)
	}
	return strings.Join(parts, ":")
}

// Compressed returns the RFC 5952 canonical form: the longest run of
// two or more consecutive zero words (leftmost on ties) replaced by
// "::", remaining words as hex with no leading zeros. A single
// isolated zero word is never compressed. The all-zero address
// renders as "::".
func (w Word128) Compressed() string {
	bestStart, bestLen := -1, 0
	for i := 0; i < Words; {
		if w[i] != 0 {
			i++
			continue
		}
		j := i
		for j < Words && w[j] == 0 {
			j++
		}
		if run := j - i; run >= 2 && run > bestLen {
			bestStart, bestLen = i, run
		}
		i = j
	}

	hextet := func(vs []uint16) string {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = strconv.FormatUint(uint64(v), 16)
		}
		return strings.Join(parts, ":")
	}

	if bestStart < 0 {
		return hextet(w[:])
	}
	if bestLen == Words {
		return "::"
	}
	return hextet(w[:bestStart]) + "::" + hextet(w[bestStart+bestLen:])
}

// Binary returns each word as 16 zero-padded bits, space-joined.
func (w Word128) Binary() string {
	parts := make([]string, Words)
	for i, v := range w {
		parts[i] = fmt.Sprintf("%016b", v)
	}
	return strings.Join(parts, " ")
}

// Hex returns "0x" followed by the 32 hex digits of the address.
func (w Word128) Hex() string {
	b := w.Bytes()
	return "0x" + hex.EncodeToString(b[:])
}

// Integer returns the 128-bit unsigned value as a decimal string.
func (w Word128) Integer() string {
	return w.BigInt().String()
}

// Base64 returns the 16 raw bytes in standard base64 encoding.
func (w Word128) Base64() string {
	b := w.Bytes()
	return base64.StdEncoding.EncodeToString(b[:])
}

// ReverseDNS returns the ip6.arpa reverse-mapping name: every hex
// nibble of the expanded form in reverse order, dot-joined.
func (w Word128) ReverseDNS() string {
	b := w.Bytes()
	nibbles := hex.EncodeToString(b[:])
	var sb strings.Builder
	sb.Grow(len(nibbles)*2 + len("ip6.arpa"))
	for i := len(nibbles) - 1; i >= 0; i-- {
		sb.WriteByte(nibbles[i])
		sb.WriteByte('.')
	}
	sb.WriteString("ip6.arpa")
	return sb.String()
}
