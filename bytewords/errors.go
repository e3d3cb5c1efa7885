package bytewords

import "errors"

// Sentinel errors for decode failures, named after the abstract error
// kinds in spec.md §7 (UR.BytewordsChecksum, UR.BytewordsUnknownWord).
var (
	ErrUnknownWord  = errors.New("bytewords: unknown word")
	ErrBadLength    = errors.New("bytewords: input length is not a multiple of the style's word width")
	ErrTooShort     = errors.New("bytewords: input shorter than the trailing CRC-32")
	ErrChecksum     = errors.New("bytewords: CRC-32 checksum mismatch")
	ErrUnknownStyle = errors.New("bytewords: unknown style")
)
