package dcbor

import "fmt"

// DecodeError carries the byte offset of a canonicalization or framing
// violation, per spec.md §7's requirement that every decode failure
// identify the offending offset.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("dcbor: decode error at offset %d: %s", e.Offset, e.Reason)
}

func newDecodeErr(offset int, reason string) error {
	return &DecodeError{Offset: offset, Reason: reason}
}

// Sentinel reasons, wrapped by DecodeError.Reason for callers matching on
// errors.Is against the underlying class is not meaningful here since the
// offset varies per-instance; callers inspecting failure *kind* should
// switch on (*DecodeError).Reason or use the exported Is* helpers below.
const (
	reasonMalformed       = "malformed encoding"
	reasonIndefiniteLen   = "indefinite-length encoding is not canonical"
	reasonDuplicateKey    = "duplicate map key"
	reasonUnsortedKeys    = "map keys are not in canonical byte order"
	reasonNonCanonicalInt = "integer is not in shortest canonical form"
	reasonNonCanonicalFlt = "float is not in canonical form"
	reasonTrailingInput   = "trailing input after decoding a complete value"
	reasonUnterminated    = "unterminated container"
)

// IsMalformed reports whether err is a DecodeError describing a structurally
// malformed encoding (as opposed to a valid-but-non-canonical one).
func IsMalformed(err error) bool {
	de, ok := err.(*DecodeError)
	return ok && (de.Reason == reasonMalformed || de.Reason == reasonUnterminated)
}

// ErrTagRedefined is returned by (*TagRegistry).Register when a tag number
// is already bound to a distinct name.
type ErrTagRedefined struct {
	Tag uint64
}

func (e *ErrTagRedefined) Error() string {
	return fmt.Sprintf("dcbor: tag %d already registered with a different binding", e.Tag)
}
