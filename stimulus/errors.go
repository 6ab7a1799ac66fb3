package stimulus

import "errors"

var (
	// ErrUnknownParam is returned for a parameter the stimulus kind does
	// not have.
	ErrUnknownParam = errors.New("stimulus: unknown parameter")

	// ErrParamType is returned when a value's variant does not match the
	// parameter.
	ErrParamType = errors.New("stimulus: parameter type mismatch")

	// ErrInvalidAnimation is returned for a non-positive duration or
	// repeat count.
	ErrInvalidAnimation = errors.New("stimulus: invalid animation")
)
