package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
)

func TestEncryptDecryptSubjectRoundTrip(t *testing.T) {
	e := aliceKnowsBob()
	before := e.Digest()

	var key [32]byte
	copy(key[:], []byte("0123456789abcdef0123456789abcdef"))

	encrypted, err := e.EncryptSubject(key)
	require.NoError(t, err)
	assert.Equal(t, before, encrypted.Digest())
	_, ok := encrypted.Subject().AsEncrypted()
	assert.True(t, ok)

	decrypted, err := encrypted.DecryptSubject(key)
	require.NoError(t, err)
	assert.Equal(t, before, decrypted.Digest())
}

func TestEncryptSubjectFailsIfAlreadyEncrypted(t *testing.T) {
	e := NewLeaf(dcbor.NewText("Alice"))
	var key [32]byte
	copy(key[:], []byte("0123456789abcdef0123456789abcdef"))

	once, err := e.EncryptSubject(key)
	require.NoError(t, err)
	_, err = once.EncryptSubject(key)
	assert.ErrorIs(t, err, ErrAlreadyEncrypted)
}

func TestDecryptSubjectFailsWithWrongKey(t *testing.T) {
	e := NewLeaf(dcbor.NewText("Alice"))
	var key, wrong [32]byte
	copy(key[:], []byte("0123456789abcdef0123456789abcdef"))
	copy(wrong[:], []byte("fedcba9876543210fedcba9876543210"))

	encrypted, err := e.EncryptSubject(key)
	require.NoError(t, err)
	_, err = encrypted.DecryptSubject(wrong)
	assert.ErrorIs(t, err, ErrAeadAuthFail)
}

func TestDecryptSubjectFailsIfNotEncrypted(t *testing.T) {
	e := NewLeaf(dcbor.NewText("Alice"))
	var key [32]byte
	_, err := e.DecryptSubject(key)
	assert.ErrorIs(t, err, ErrNotEncrypted)
}
