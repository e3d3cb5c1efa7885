package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/envelope"
)

func TestEngineRunEnforcesConfiguredCeiling(t *testing.T) {
	e := chainOfWrapped(10, "x")
	unwrap := NewWrapped(WrappedUnwrap, nil)
	// No Max: the staircase would keep finding new unwrap counts until it
	// runs out of Wrapped layers at 10, past a ceiling of 3.
	pat := NewGroup(unwrap, Quantifier{Min: 0, Max: nil, Reluctance: Greedy})

	eng := NewEngine(WithMaxRepeatExpansion(3))
	_, err := eng.Run(pat, e)
	require.Error(t, err)
	var limitErr *ErrVMLimitExceeded
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 3, limitErr.Limit)
}

func TestEngineRunWithinCeilingSucceeds(t *testing.T) {
	e := chainOfWrapped(2, "x")
	unwrap := NewWrapped(WrappedUnwrap, nil)
	pat := NewGroup(unwrap, Quantifier{Min: 0, Max: nil, Reluctance: Greedy})

	eng := NewEngine(WithMaxRepeatExpansion(10))
	results, err := eng.Run(pat, e)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	leaf, ok := results[0].Path.last().AsLeaf()
	require.True(t, ok)
	s, ok := leaf.AsText()
	require.True(t, ok)
	assert.Equal(t, "x", s)
}

func TestEngineRunPassesAtomicPatternThroughUnbounded(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewText("x"))
	eng := NewEngine()
	results, err := eng.Run(NewAny(), e)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
