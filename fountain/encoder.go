package fountain

import "hash/crc32"

// Encoder splits a payload into fixed-size fragments and produces an
// unbounded, deterministic sequence of parts: the first SeqLen are the
// fragments themselves, every part after that a fresh XOR mixture.
type Encoder struct {
	fragments   [][]byte
	fragmentLen int
	messageLen  int
	checksum    uint32
}

// NewEncoder pads payload to a multiple of fragmentLen and records its
// CRC-32, which seeds every mixture part's index selection.
func NewEncoder(payload []byte, fragmentLen int) *Encoder {
	seqLen := (len(payload) + fragmentLen - 1) / fragmentLen
	if seqLen == 0 {
		seqLen = 1
	}
	fragments := make([][]byte, seqLen)
	for i := 0; i < seqLen; i++ {
		frag := make([]byte, fragmentLen)
		start := i * fragmentLen
		end := start + fragmentLen
		if end > len(payload) {
			end = len(payload)
		}
		copy(frag, payload[start:end])
		fragments[i] = frag
	}
	return &Encoder{
		fragments:   fragments,
		fragmentLen: fragmentLen,
		messageLen:  len(payload),
		checksum:    crc32.ChecksumIEEE(payload),
	}
}

// SeqLen is the number of pure fragments the payload was split into.
func (e *Encoder) SeqLen() int { return len(e.fragments) }

// MessageLen is the original, unpadded payload length.
func (e *Encoder) MessageLen() int { return e.messageLen }

// Checksum is the CRC-32 of the original payload.
func (e *Encoder) Checksum() uint32 { return e.checksum }

// Fragment returns the (pure or mixture) fragment data for 1-based part
// seqNum. It is a pure function of the encoder's fixed inputs: calling it
// twice with the same seqNum yields byte-identical output.
func (e *Encoder) Fragment(seqNum int) []byte {
	idxs := indices(e.checksum, len(e.fragments), seqNum)
	out := make([]byte, e.fragmentLen)
	for _, i := range idxs {
		xorInto(out, e.fragments[i])
	}
	return out
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
