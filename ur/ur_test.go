package ur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinglePartRoundTrip(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0xff}
	enc, err := Encode("envelope", payload)
	require.NoError(t, err)
	assert.Equal(t, "ur:envelope/", enc[:len("ur:envelope/")])

	dec, err := Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, "envelope", dec.Type)
	assert.Equal(t, payload, dec.Payload)
}

func TestDecodeRejectsInvalidType(t *testing.T) {
	_, err := Decode("ur:Bad_Type/abcd")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestDecodeRejectsMissingScheme(t *testing.T) {
	_, err := Decode("envelope/abcd")
	assert.ErrorIs(t, err, ErrInvalidScheme)
}

func TestDecodeRejectsMultipartInput(t *testing.T) {
	enc, err := NewEncoder("envelope", []byte("0123456789"), 4)
	require.NoError(t, err)
	part, err := enc.Part(1)
	require.NoError(t, err)
	_, err = Decode(part)
	assert.ErrorIs(t, err, ErrNotSinglePart)
}

func TestMultipartRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog repeatedly for fragmentation")
	enc, err := NewEncoder("envelope", payload, 10)
	require.NoError(t, err)

	dec := NewDecoder()
	for s := enc.SeqLen(); s >= 1; s-- {
		part, err := enc.Part(s)
		require.NoError(t, err)
		require.NoError(t, dec.Receive(part))
	}
	require.True(t, dec.Done())
	msg, err := dec.Message()
	require.NoError(t, err)
	assert.Equal(t, payload, msg)
	assert.Equal(t, "envelope", dec.Type())
}

func TestMultipartRejectsTypeMismatch(t *testing.T) {
	enc, err := NewEncoder("envelope", []byte("0123456789"), 4)
	require.NoError(t, err)
	part1, err := enc.Part(1)
	require.NoError(t, err)

	enc2, err := NewEncoder("crypto-seed", []byte("0123456789"), 4)
	require.NoError(t, err)
	part2, err := enc2.Part(1)
	require.NoError(t, err)

	dec := NewDecoder()
	require.NoError(t, dec.Receive(part1))
	err = dec.Receive(part2)
	var typeErr *ErrUnexpectedType
	require.ErrorAs(t, err, &typeErr)
}
