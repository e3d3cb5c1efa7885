package fountain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPureFragmentsRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog, twice over")
	enc := NewEncoder(payload, 8)
	dec := NewDecoder()
	for s := enc.SeqLen(); s >= 1; s-- {
		err := dec.AddPart(s, enc.SeqLen(), enc.MessageLen(), enc.Checksum(), enc.Fragment(s))
		require.NoError(t, err)
	}
	require.True(t, dec.Done())
	msg, err := dec.Message()
	require.NoError(t, err)
	assert.Equal(t, payload, msg)
}

func TestMixturesReduceToCompleteMessage(t *testing.T) {
	payload := []byte("0123456789abcdef0123456789abcdef0123456789abcdef")
	enc := NewEncoder(payload, 5)
	dec := NewDecoder()
	// Withhold one pure fragment and supply enough mixture parts instead.
	skip := 1
	for s := 1; s <= enc.SeqLen(); s++ {
		if s == skip {
			continue
		}
		require.NoError(t, dec.AddPart(s, enc.SeqLen(), enc.MessageLen(), enc.Checksum(), enc.Fragment(s)))
	}
	require.False(t, dec.Done())
	for s := enc.SeqLen() + 1; s <= enc.SeqLen()+200 && !dec.Done(); s++ {
		require.NoError(t, dec.AddPart(s, enc.SeqLen(), enc.MessageLen(), enc.Checksum(), enc.Fragment(s)))
	}
	require.True(t, dec.Done(), "mixtures should eventually resolve the missing fragment")
	msg, err := dec.Message()
	require.NoError(t, err)
	assert.Equal(t, payload, msg)
}

func TestDecoderRejectsInconsistentMetadata(t *testing.T) {
	dec := NewDecoder()
	require.NoError(t, dec.AddPart(1, 3, 10, 0xaaaaaaaa, []byte{1, 2, 3, 4}))
	err := dec.AddPart(2, 3, 10, 0xbbbbbbbb, []byte{5, 6, 7, 8})
	assert.ErrorIs(t, err, ErrInconsistentMetadata)
}

func TestDuplicatePartsAreIdempotent(t *testing.T) {
	payload := []byte("short")
	enc := NewEncoder(payload, 3)
	dec := NewDecoder()
	for i := 0; i < 3; i++ {
		for s := 1; s <= enc.SeqLen(); s++ {
			require.NoError(t, dec.AddPart(s, enc.SeqLen(), enc.MessageLen(), enc.Checksum(), enc.Fragment(s)))
		}
	}
	require.True(t, dec.Done())
	msg, err := dec.Message()
	require.NoError(t, err)
	assert.Equal(t, payload, msg)
}
