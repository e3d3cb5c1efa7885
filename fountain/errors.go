package fountain

import "errors"

var (
	// ErrInconsistentMetadata is returned when parts claiming to belong to
	// the same message disagree on seqLen, messageLen, or checksum.
	ErrInconsistentMetadata = errors.New("fountain: inconsistent seqLen/messageLen/checksum across parts")
	// ErrChecksumMismatch is returned when the reassembled message's CRC-32
	// does not equal the checksum carried by its parts.
	ErrChecksumMismatch = errors.New("fountain: reassembled message fails checksum")
	// ErrIncomplete is returned by Message before enough parts have arrived.
	ErrIncomplete = errors.New("fountain: message is not yet fully reconstructed")
)
