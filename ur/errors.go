package ur

import "errors"

// Sentinel errors named after the abstract UR.* error kinds in spec.md §7.
var (
	ErrInvalidScheme      = errors.New("ur: missing \"ur:\" scheme prefix")
	ErrTypeUnspecified    = errors.New("ur: type is empty")
	ErrInvalidType        = errors.New("ur: type does not match [a-z0-9-]+")
	ErrNotSinglePart      = errors.New("ur: input has a sequence component, not a single-part UR")
	ErrMalformedMultipart = errors.New("ur: malformed sequence component, expected seqNum-seqLen")
)

// ErrUnexpectedType is returned when a decoded UR's type does not match
// what the caller expected.
type ErrUnexpectedType struct {
	Expected, Found string
}

func (e *ErrUnexpectedType) Error() string {
	return "ur: expected type " + e.Expected + ", found " + e.Found
}
