// Package ipv6 implements an IPv6 address codec: parsing textual
// address/prefix notation into a canonical 128-bit representation,
// rendering every standard textual and binary form of that value,
// classifying addresses per RFC rules, and deriving network ranges.
//
// All operations are pure functions over immutable values and are safe
// for concurrent use.
package ipv6

import (
	"fmt"
	"math/big"
)

const (
	// Words is the number of 16-bit groups in an IPv6 address.
	Words = 8

	// BitLen is the number of bits in an IPv6 address.
	BitLen = 128

	// ByteLen is the length in bytes of an IPv6 address.
	ByteLen = 16

	// MaxPrefixLength is the longest valid prefix length.
	MaxPrefixLength = 128

	// HostPrefixLength is the prefix length assumed when textual input
	// carries no /length suffix (a host route).
	HostPrefixLength = 128
)

// Word128 is the canonical 128-bit address value: eight unsigned 16-bit
// hextets, most-significant first. All textual forms are views derived
// from this representation.
type Word128 [Words]uint16

// IsZero reports whether all 128 bits are zero.
func (w Word128) IsZero() bool {
	for _, v := range w {
		if v != 0 {
			return false
		}
	}
	return true
}

// Bytes returns the 16 raw bytes of the address, each word split
// high-byte-first.
func (w Word128) Bytes() [ByteLen]byte {
	var b [ByteLen]byte
	for i, v := range w {
		b[2*i] = byte(v >> 8)
		b[2*i+1] = byte(v)
	}
	return b
}

// FromBytes constructs a Word128 from 16 raw bytes in network order.
func FromBytes(b [ByteLen]byte) Word128 {
	var w Word128
	for i := 0; i < Words; i++ {
		w[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return w
}

// BigInt returns a new big.Int holding the unsigned 128-bit value.
func (w Word128) BigInt() *big.Int {
	b := w.Bytes()
	return new(big.Int).SetBytes(b[:])
}

// FromBigInt converts a big.Int in [0, 2^128) to a Word128.
func FromBigInt(v *big.Int) (Word128, error) {
	if v.Sign() < 0 || v.BitLen() > BitLen {
		return Word128{}, fmt.Errorf("value out of 128-bit range")
	}
	var b [ByteLen]byte
	v.FillBytes(b[:])
	return FromBytes(b), nil
}

// Compare returns -1 if w < o, 0 if equal, 1 if w > o, comparing the
// addresses as unsigned 128-bit integers.
func (w Word128) Compare(o Word128) int {
	for i := 0; i < Words; i++ {
		if w[i] < o[i] {
			return -1
		}
		if w[i] > o[i] {
			return 1
		}
	}
	return 0
}

// CommonPrefixLen returns the number of leading bits shared by two
// addresses.
func CommonPrefixLen(a, b Word128) int {
	n := 0
	for i := 0; i < Words; i++ {
		if a[i] == b[i] {
			n += 16
			continue
		}
		x := a[i] ^ b[i]
		for bit := 15; bit >= 0; bit-- {
			if x&(1<<uint(bit)) != 0 {
				return n + (15 - bit)
			}
		}
	}
	return n
}

// MaskBits returns a copy of w with every bit in the range
// [fromBit, toBit) cleared (fill=false) or set (fill=true). Bit 0 is
// the most-significant bit of the address. Words fully inside the
// range are replaced wholesale; boundary words are masked partially.
func MaskBits(w Word128, fromBit, toBit int, fill bool) Word128 {
	if fromBit < 0 {
		fromBit = 0
	}
	if toBit > BitLen {
		toBit = BitLen
	}
	for wi := 0; wi < Words; wi++ {
		lo := wi * 16
		hi := lo + 16
		if hi <= fromBit || lo >= toBit {
			continue
		}
		start := 0
		if fromBit > lo {
			start = fromBit - lo
		}
		end := 16
		if toBit < hi {
			end = toBit - lo
		}
		// Bits [start, end) within the word, MSB first.
		mask := uint16(0xffff>>uint(start)) &^ uint16(0xffff>>uint(end))
		if fill {
			w[wi] |= mask
		} else {
			w[wi] &^= mask
		}
	}
	return w
}

// WriteBits returns a copy of w with the low bitCount bits of value
// written into the address bit range [startBit, startBit+bitCount),
// most-significant bit of the field first. The write may straddle
// word boundaries and handles partial words at both ends of the range.
// Field bits beyond the width of value are written as zero.
func WriteBits(w Word128, startBit, bitCount int, value uint64) Word128 {
	for j := 0; j < bitCount; j++ {
		pos := startBit + j
		if pos < 0 || pos >= BitLen {
			continue
		}
		wi := pos / 16
		shift := uint(15 - pos%16)
		var bit uint64
		if fieldBit := bitCount - 1 - j; fieldBit < 64 {
			bit = (value >> uint(fieldBit)) & 1
		}
		if bit == 1 {
			w[wi] |= 1 << shift
		} else {
			w[wi] &^= 1 << shift
		}
	}
	return w
}

// Network returns the network address for the given prefix length: all
// bits beyond position plen cleared.
func (w Word128) Network(plen int) Word128 {
	return MaskBits(w, plen, BitLen, false)
}

// LastAddress returns the highest address in the prefix: all bits
// beyond position plen set.
func (w Word128) LastAddress(plen int) Word128 {
	return MaskBits(w, plen, BitLen, true)
}

// HostCount returns 2^(128-plen), the number of addresses covered by
// the prefix, as an exact big integer.
func HostCount(plen int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(BitLen-plen))
}
