package envelope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)
	e := NewLeaf(dcbor.NewText(text))
	before := e.Digest()

	compressed, err := e.Compress()
	require.NoError(t, err)
	_, ok := compressed.AsCompressed()
	require.True(t, ok)
	assert.Equal(t, before, compressed.Digest())

	decompressed, err := compressed.Decompress()
	require.NoError(t, err)
	assert.Equal(t, before, decompressed.Digest())
	leaf, ok := decompressed.AsLeaf()
	require.True(t, ok)
	s, ok := leaf.AsText()
	require.True(t, ok)
	assert.Equal(t, text, s)
}

func TestCompressSkippedWhenNotSmaller(t *testing.T) {
	e := NewLeaf(dcbor.NewText("x"))
	compressed, err := e.Compress()
	require.NoError(t, err)
	assert.Equal(t, KindLeaf, compressed.Kind())
}

func TestDecompressFailsIfNotCompressed(t *testing.T) {
	e := NewLeaf(dcbor.NewText("Alice"))
	_, err := e.Decompress()
	assert.ErrorIs(t, err, ErrNotCompressed)
}
