package ipv6

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses textual IPv6 address/prefix notation into an
// AddressRecord. An optional /length suffix selects the prefix length
// (default 128). Parse never fails fatally: every failure is captured
// in the returned record as Valid=false plus an error detail.
func Parse(text string) AddressRecord {
	rec := AddressRecord{RawInput: text}

	trimmed := strings.TrimSpace(text)
	body := trimmed
	plen := HostPrefixLength

	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		var err error
		plen, err = parsePrefixLength(trimmed[idx+1:])
		if err != nil {
			rec.ErrorDetail = err.Error()
			return rec
		}
		body = trimmed[:idx]
	}

	words, err := parseAddress(body)
	if err != nil {
		rec.ErrorDetail = err.Error()
		return rec
	}

	return buildRecord(text, words, plen)
}

// parsePrefixLength parses the decimal /length suffix.
func parsePrefixLength(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty length", ErrInvalidPrefix)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrefix, s)
	}
	if n < 0 || n > MaxPrefixLength {
		return 0, fmt.Errorf("%w: %d outside [0, 128]", ErrInvalidPrefix, n)
	}
	return n, nil
}

// parseAddress converts the address body (no /length suffix) into its
// eight 16-bit words.
func parseAddress(body string) (Word128, error) {
	var zero Word128

	if body == "" {
		return zero, fmt.Errorf("%w: empty address", ErrInvalidLength)
	}
	if body == "::" {
		return zero, nil
	}
	if strings.Count(body, "::") > 1 {
		return zero, ErrMultipleCompressionMarkers
	}

	halves := strings.Split(body, "::")
	switch len(halves) {
	case 1:
		words, err := parseGroups(strings.Split(body, ":"))
		if err != nil {
			return zero, err
		}
		if len(words) != Words {
			return zero, fmt.Errorf("%w: %d words, want 8", ErrInvalidLength, len(words))
		}
		var w Word128
		copy(w[:], words)
		return w, nil

	case 2:
		var left, right []uint16
		var err error
		if halves[0] != "" {
			if left, err = parseGroups(strings.Split(halves[0], ":")); err != nil {
				return zero, err
			}
		}
		if halves[1] != "" {
			if right, err = parseGroups(strings.Split(halves[1], ":")); err != nil {
				return zero, err
			}
		}
		missing := Words - len(left) - len(right)
		if missing < 0 {
			return zero, fmt.Errorf("%w: %d words with compression marker", ErrInvalidLength, len(left)+len(right))
		}
		var w Word128
		copy(w[:], left)
		copy(w[Words-len(right):], right)
		return w, nil

	default:
		return zero, ErrMultipleCompressionMarkers
	}
}

// parseGroups validates colon-separated groups and converts them to
// words. A trailing dotted-quad group (IPv4-mapped or -compatible
// embedding) expands to two words.
func parseGroups(groups []string) ([]uint16, error) {
	words := make([]uint16, 0, Words)
	for i, g := range groups {
		if strings.ContainsRune(g, '.') {
			if i != len(groups)-1 {
				return nil, fmt.Errorf("%w: dotted-quad not in final position", ErrInvalidIPv4Embed)
			}
			hi, lo, err := parseDottedQuad(g)
			if err != nil {
				return nil, err
			}
			words = append(words, hi, lo)
			continue
		}
		v, err := parseHextet(g)
		if err != nil {
			return nil, err
		}
		words = append(words, v)
	}
	return words, nil
}

// parseHextet validates a single group: 1-4 hex digits, value <= 0xffff.
func parseHextet(g string) (uint16, error) {
	if len(g) < 1 || len(g) > 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHextet, g)
	}
	v, err := strconv.ParseUint(g, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHextet, g)
	}
	return uint16(v), nil
}

// parseDottedQuad parses an embedded IPv4 address into two words.
func parseDottedQuad(q string) (uint16, uint16, error) {
	octets := strings.Split(q, ".")
	if len(octets) != 4 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidIPv4Embed, q)
	}
	var b [4]uint16
	for i, o := range octets {
		if len(o) < 1 || len(o) > 3 {
			return 0, 0, fmt.Errorf("%w: octet %q", ErrInvalidIPv4Embed, o)
		}
		n := 0
		for _, r := range o {
			if r < '0' || r > '9' {
				return 0, 0, fmt.Errorf("%w: octet %q", ErrInvalidIPv4Embed, o)
			}
			n = n*10 + int(r-'0')
		}
		if n > 255 {
			return 0, 0, fmt.Errorf("%w: octet %q", ErrInvalidIPv4Embed, o)
		}
		b[i] = uint16(n)
	}
	return b[0]<<8 | b[1], b[2]<<8 | b[3], nil
}

// buildRecord derives every view of a successfully parsed address.
func buildRecord(raw string, w Word128, plen int) AddressRecord {
	class := Classify(w)
	network := w.Network(plen)
	last := w.LastAddress(plen)

	return AddressRecord{
		RawInput:     raw,
		Valid:        true,
		Words:        w,
		PrefixLength: plen,

		Classification:  class,
		Scope:           ScopeOf(class, w),
		Flags:           deriveFlags(w, plen),
		ComplianceNotes: complianceNotes(class),

		Expanded:   w.Expanded(),
		Compressed: w.Compressed(),
		Binary:     w.Binary(),
		Hex:        w.Hex(),
		Integer:    w.Integer(),
		Base64:     w.Base64(),
		ReverseDNS: w.ReverseDNS(),

		Network:       fmt.Sprintf("%s/%d", network.Compressed(), plen),
		FirstAddress:  network.Compressed(),
		LastAddress:   last.Compressed(),
		HostCount:     HostCount(plen).String(),
		HostCountPow2: fmt.Sprintf("2^%d", BitLen-plen),
	}
}
