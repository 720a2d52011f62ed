package tuid

import "errors"

var (
	// ErrNilInput reports an absent input, such as a nil byte slice.
	ErrNilInput = errors.New("tuid: nil input")
	// ErrInvalidFormat reports a text or binary form with the wrong length or
	// characters outside the alphabet.
	ErrInvalidFormat = errors.New("tuid: invalid format")
	// ErrInvalidArgument reports an out-of-range offset or a destination
	// buffer too small for 12 bytes.
	ErrInvalidArgument = errors.New("tuid: invalid argument")
	// ErrInsufficientData reports a stream that ended before a full 12-byte
	// identifier could be read.
	ErrInsufficientData = errors.New("tuid: insufficient data")
)
