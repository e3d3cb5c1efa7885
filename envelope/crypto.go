package envelope

import (
	"crypto/rand"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/gordian-systems/go-envelope/dcbor"
)

// EncryptedMessage is an AEAD-sealed payload: a ChaCha20-Poly1305
// ciphertext, its nonce, and any additional authenticated data.
type EncryptedMessage struct {
	Nonce      [chacha20poly1305.NonceSize]byte
	Ciphertext []byte
	AAD        []byte
}

func encryptedMessageToCBOR(m *EncryptedMessage) dcbor.Value {
	return dcbor.NewArray([]dcbor.Value{
		dcbor.NewBytes(m.Nonce[:]),
		dcbor.NewBytes(m.Ciphertext),
		dcbor.NewBytes(m.AAD),
	})
}

func encryptedMessageFromCBOR(v dcbor.Value) (*EncryptedMessage, error) {
	items, ok := v.AsArray()
	if !ok || len(items) != 3 {
		return nil, ErrMalformedCBOR
	}
	nonce, ok := items[0].AsBytes()
	if !ok || len(nonce) != chacha20poly1305.NonceSize {
		return nil, ErrAeadAuthFail
	}
	ct, ok := items[1].AsBytes()
	if !ok {
		return nil, ErrAeadAuthFail
	}
	aad, ok := items[2].AsBytes()
	if !ok {
		return nil, ErrAeadAuthFail
	}
	m := &EncryptedMessage{Ciphertext: ct, AAD: aad}
	copy(m.Nonce[:], nonce)
	return m, nil
}

func seal(key [32]byte, plaintext, aad []byte) (*EncryptedMessage, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce[:], plaintext, aad)
	return &EncryptedMessage{Nonce: nonce, Ciphertext: ct, AAD: aad}, nil
}

func open(key [32]byte, m *EncryptedMessage) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, m.Nonce[:], m.Ciphertext, m.AAD)
	if err != nil {
		return nil, ErrAeadAuthFail
	}
	return pt, nil
}

// EncryptSubject replaces e's subject with its AEAD-sealed form under key,
// keeping the envelope's digest equal to the plaintext subject's digest
// (spec.md §3.3's digest-preservation invariant). It fails if the subject
// is already Encrypted.
func (e *Envelope) EncryptSubject(key [32]byte) (*Envelope, error) {
	subject := e.Subject()
	if subject.kind == KindEncrypted {
		return nil, ErrAlreadyEncrypted
	}
	plaintext, err := dcbor.Encode(ToCBOR(subject))
	if err != nil {
		return nil, err
	}
	digest := subject.Digest()
	msg, err := seal(key, plaintext, digest[:])
	if err != nil {
		return nil, err
	}
	encrypted := &Envelope{kind: KindEncrypted, storedDigest: digest, message: msg}
	return e.withSubject(encrypted), nil
}

// DecryptSubject inverts EncryptSubject. It fails if the subject is not
// Encrypted or if AEAD authentication fails.
func (e *Envelope) DecryptSubject(key [32]byte) (*Envelope, error) {
	subject := e.Subject()
	if subject.kind != KindEncrypted {
		return nil, ErrNotEncrypted
	}
	plaintext, err := open(key, subject.message)
	if err != nil {
		return nil, err
	}
	v, err := dcbor.Decode(plaintext)
	if err != nil {
		return nil, err
	}
	decrypted, err := FromCBOR(v)
	if err != nil {
		return nil, err
	}
	if decrypted.Digest() != subject.storedDigest {
		return nil, &ErrDigestMismatch{Expected: subject.storedDigest, Actual: decrypted.Digest()}
	}
	return e.withSubject(decrypted), nil
}

// withSubject returns e with its subject replaced, preserving e's
// assertions if e is a Node, or returning newSubject directly otherwise.
func (e *Envelope) withSubject(newSubject *Envelope) *Envelope {
	if e.kind != KindNode {
		return newSubject
	}
	return newNode(newSubject, e.assertions)
}
