package planner

import "errors"

var (
	// ErrInvalidPrefix is returned when the base network string does not
	// parse as a valid IPv6 prefix.
	ErrInvalidPrefix = errors.New("invalid network prefix")

	// ErrInvalidTarget is returned when the target prefix length is not
	// strictly longer than the base prefix, or exceeds 128.
	ErrInvalidTarget = errors.New("invalid target prefix length")
)
