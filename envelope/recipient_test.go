package envelope

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/curve25519"
)

func generateX25519Pair(t *testing.T) (pub, priv [32]byte) {
	t.Helper()
	_, err := rand.Read(priv[:])
	require.NoError(t, err)
	p, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	require.NoError(t, err)
	copy(pub[:], p)
	return pub, priv
}

func TestEncryptToRecipientsDecryptRoundTrip(t *testing.T) {
	alicePub, alicePriv := generateX25519Pair(t)
	bobPub, bobPriv := generateX25519Pair(t)

	e := aliceKnowsBob()
	sealed, err := e.EncryptToRecipients([][32]byte{alicePub, bobPub})
	require.NoError(t, err)

	forAlice, err := sealed.DecryptToRecipient(alicePriv)
	require.NoError(t, err)
	assert.Equal(t, e.Digest(), forAlice.Digest())

	forBob, err := sealed.DecryptToRecipient(bobPriv)
	require.NoError(t, err)
	assert.Equal(t, e.Digest(), forBob.Digest())
}

func TestDecryptToRecipientFailsWithoutMatchingEntry(t *testing.T) {
	alicePub, _ := generateX25519Pair(t)
	_, strangerPriv := generateX25519Pair(t)

	e := aliceKnowsBob()
	sealed, err := e.EncryptToRecipients([][32]byte{alicePub})
	require.NoError(t, err)

	_, err = sealed.DecryptToRecipient(strangerPriv)
	assert.ErrorIs(t, err, ErrNoMatchingRecipient)
}

func TestAddRecipientFailsIfNotEncrypted(t *testing.T) {
	pub, _ := generateX25519Pair(t)
	var contentKey [32]byte
	e := aliceKnowsBob()
	_, err := e.AddRecipient(pub, contentKey)
	assert.ErrorIs(t, err, ErrNotEncrypted)
}
