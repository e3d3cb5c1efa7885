package envelope

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

// SealedMessage is a content key sealed to one recipient's X25519 public
// key via ephemeral-ECDH + HKDF + ChaCha20-Poly1305 (spec.md §4.3's
// `addRecipient`/`decryptToRecipient` construction).
type SealedMessage struct {
	EphemeralPublicKey [32]byte
	Nonce              [chacha20poly1305.NonceSize]byte
	Ciphertext         []byte
}

func sealedMessageToCBOR(m *SealedMessage) dcbor.Value {
	return dcbor.NewArray([]dcbor.Value{
		dcbor.NewBytes(m.EphemeralPublicKey[:]),
		dcbor.NewBytes(m.Nonce[:]),
		dcbor.NewBytes(m.Ciphertext),
	})
}

func sealedMessageFromCBOR(v dcbor.Value) (*SealedMessage, error) {
	items, ok := v.AsArray()
	if !ok || len(items) != 3 {
		return nil, ErrMalformedCBOR
	}
	ephPub, ok1 := items[0].AsBytes()
	nonce, ok2 := items[1].AsBytes()
	ct, ok3 := items[2].AsBytes()
	if !ok1 || !ok2 || !ok3 || len(ephPub) != 32 || len(nonce) != chacha20poly1305.NonceSize {
		return nil, ErrMalformedCBOR
	}
	m := &SealedMessage{Ciphertext: ct}
	copy(m.EphemeralPublicKey[:], ephPub)
	copy(m.Nonce[:], nonce)
	return m, nil
}

// deriveWrapKey derives the per-recipient AEAD key via HKDF-SHA-256 of the
// ECDH shared secret, using the sender's ephemeral public key as info
// (spec.md §4.3's sealed message primitive).
func deriveWrapKey(shared, ephPub []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, shared, nil, ephPub)
	key := make([]byte, 32)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func sealToRecipient(recipientPub [32]byte, contentKey [32]byte) (*SealedMessage, error) {
	var ephPriv [32]byte
	if _, err := rand.Read(ephPriv[:]); err != nil {
		return nil, err
	}
	ephPub, err := curve25519.X25519(ephPriv[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}
	shared, err := curve25519.X25519(ephPriv[:], recipientPub[:])
	if err != nil {
		return nil, err
	}
	wrapKey, err := deriveWrapKey(shared, ephPub)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(wrapKey)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce[:], contentKey[:], nil)
	m := &SealedMessage{Nonce: nonce, Ciphertext: ct}
	copy(m.EphemeralPublicKey[:], ephPub)
	return m, nil
}

func openSealedMessage(priv [32]byte, pub [32]byte, m *SealedMessage) ([32]byte, error) {
	var zero [32]byte
	shared, err := curve25519.X25519(priv[:], m.EphemeralPublicKey[:])
	if err != nil {
		return zero, err
	}
	wrapKey, err := deriveWrapKey(shared, m.EphemeralPublicKey[:])
	if err != nil {
		return zero, err
	}
	aead, err := chacha20poly1305.New(wrapKey)
	if err != nil {
		return zero, err
	}
	pt, err := aead.Open(nil, m.Nonce[:], m.Ciphertext, nil)
	if err != nil {
		return zero, ErrAeadAuthFail
	}
	var key [32]byte
	copy(key[:], pt)
	return key, nil
}

// AddRecipient adds a `hasRecipient: SealedMessage` assertion sealing
// contentKey to pubKey. It fails unless e's subject is already Encrypted.
func (e *Envelope) AddRecipient(pubKey, contentKey [32]byte) (*Envelope, error) {
	if e.Subject().kind != KindEncrypted {
		return nil, ErrNotEncrypted
	}
	sealed, err := sealToRecipient(pubKey, contentKey)
	if err != nil {
		return nil, err
	}
	return e.AddAssertion(NewKnownValue(knownvalue.HasRecipient), NewLeaf(sealedMessageToCBOR(sealed))), nil
}

// EncryptToRecipients encrypts e's subject under a fresh random content
// key and seals that key to every given recipient public key.
func (e *Envelope) EncryptToRecipients(pubKeys [][32]byte) (*Envelope, error) {
	var contentKey [32]byte
	if _, err := rand.Read(contentKey[:]); err != nil {
		return nil, err
	}
	result, err := e.EncryptSubject(contentKey)
	if err != nil {
		return nil, err
	}
	for _, pub := range pubKeys {
		result, err = result.AddRecipient(pub, contentKey)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// DecryptToRecipient recovers the content key from whichever `hasRecipient`
// assertion matches privKey, then strips every `hasRecipient` assertion and
// decrypts the subject, giving back the envelope as it was before
// EncryptToRecipients. It fails if no recipient entry matches.
func (e *Envelope) DecryptToRecipient(privKey [32]byte) (*Envelope, error) {
	pub, err := curve25519.X25519(privKey[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}
	var pubArr [32]byte
	copy(pubArr[:], pub)
	if e.kind != KindNode {
		return nil, ErrNoMatchingRecipient
	}
	for _, a := range e.assertions {
		pred, obj, ok := a.AsAssertion()
		if !ok {
			continue
		}
		kv, ok := pred.AsKnownValue()
		if !ok || kv != knownvalue.HasRecipient {
			continue
		}
		leaf, ok := obj.AsLeaf()
		if !ok {
			continue
		}
		sealed, err := sealedMessageFromCBOR(leaf)
		if err != nil {
			continue
		}
		contentKey, err := openSealedMessage(privKey, pubArr, sealed)
		if err != nil {
			continue
		}
		kept := make([]*Envelope, 0, len(e.assertions))
		for _, other := range e.assertions {
			if p, _, ok := other.AsAssertion(); ok {
				if kv, ok := p.AsKnownValue(); ok && kv == knownvalue.HasRecipient {
					continue
				}
			}
			kept = append(kept, other)
		}
		if len(kept) == 0 {
			return e.subject.DecryptSubject(contentKey)
		}
		return newNode(e.subject, kept).DecryptSubject(contentKey)
	}
	return nil, ErrNoMatchingRecipient
}
