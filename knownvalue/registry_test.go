package knownvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryNames(t *testing.T) {
	name, ok := DefaultRegistry.Name(Knows)
	require.True(t, ok)
	assert.Equal(t, "knows", name)
	assert.Equal(t, "knows", Knows.String())
}

func TestByNameRoundTrip(t *testing.T) {
	v, ok := DefaultRegistry.ByName("salt")
	require.True(t, ok)
	assert.Equal(t, Salt, v)
}

func TestDigestIsStableAndDistinctPerValue(t *testing.T) {
	d1, err := Knows.Digest()
	require.NoError(t, err)
	d2, err := Knows.Digest()
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	d3, err := Salt.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestRegisterIsIdempotentForSameBinding(t *testing.T) {
	r := NewRegistry()
	v1 := r.Register(42, "answer")
	v2 := r.Register(42, "answer")
	assert.Equal(t, v1, v2)
}
