package parser

import "errors"

var (
	// ErrInputNotFound is returned when the registration log does not exist.
	ErrInputNotFound = errors.New("parser: input not found")

	// ErrMalformedRecord is returned when a completed record carries no start marker.
	ErrMalformedRecord = errors.New("parser: malformed record")
)
