package envelope

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/gordian-systems/go-envelope/dcbor"
)

// Compress replaces e's subject with its zlib-compressed dCBOR encoding,
// preserving the subject's digest. If compression would not shrink the
// encoding, the subject is returned unchanged (spec.md §4.3).
func (e *Envelope) Compress() (*Envelope, error) {
	subject := e.Subject()
	if subject.kind == KindCompressed {
		return e, nil
	}
	plaintext, err := dcbor.Encode(ToCBOR(subject))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(plaintext); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	if buf.Len() >= len(plaintext) {
		return e, nil
	}
	compressed := &Envelope{kind: KindCompressed, storedDigest: subject.Digest(), compressed: buf.Bytes()}
	return e.withSubject(compressed), nil
}

// Decompress inverts Compress. It fails if the subject is not Compressed.
func (e *Envelope) Decompress() (*Envelope, error) {
	subject := e.Subject()
	if subject.kind != KindCompressed {
		return nil, ErrNotCompressed
	}
	r, err := zlib.NewReader(bytes.NewReader(subject.compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	v, err := dcbor.Decode(plaintext)
	if err != nil {
		return nil, err
	}
	decompressed, err := FromCBOR(v)
	if err != nil {
		return nil, err
	}
	if decompressed.Digest() != subject.storedDigest {
		return nil, &ErrDigestMismatch{Expected: subject.storedDigest, Actual: decompressed.Digest()}
	}
	return e.withSubject(decompressed), nil
}
