package ipv6

import "errors"

var (
	// ErrInvalidPrefix is returned when the /length suffix is missing a
	// value, non-numeric, or outside [0, 128].
	ErrInvalidPrefix = errors.New("invalid prefix length")

	// ErrMultipleCompressionMarkers is returned when the address body
	// contains more than one "::" marker.
	ErrMultipleCompressionMarkers = errors.New("multiple :: compression markers")

	// ErrInvalidHextet is returned when a colon-separated group is not
	// 1-4 hex digits or exceeds 0xffff.
	ErrInvalidHextet = errors.New("invalid hextet")

	// ErrInvalidLength is returned when the expanded address does not
	// contain exactly 8 words.
	ErrInvalidLength = errors.New("invalid address length")

	// ErrInvalidIPv4Embed is returned when an embedded dotted-quad is
	// malformed.
	ErrInvalidIPv4Embed = errors.New("invalid embedded IPv4 address")
)
