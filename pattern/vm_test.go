package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/envelope"
)

func intPtr(n int) *int { return &n }

// chainOfWrapped builds n nested Wrap() layers around a text leaf, so a
// `(unwrap){n,m}` group has exactly n successful unwraps available.
func chainOfWrapped(n int, text string) *envelope.Envelope {
	e := envelope.NewLeaf(dcbor.NewText(text))
	for i := 0; i < n; i++ {
		e = e.Wrap()
	}
	return e
}

func TestGroupGreedyTriesLargestCountFirst(t *testing.T) {
	e := chainOfWrapped(3, "x")
	unwrap := NewWrapped(WrappedUnwrap, nil)
	pat := NewGroup(unwrap, Quantifier{Min: 0, Max: intPtr(3), Reluctance: Greedy})
	results := Evaluate(pat, e)
	require.NotEmpty(t, results)
	// The first result should correspond to the maximum repeat count (3
	// unwraps), landing on the innermost leaf.
	leaf, ok := results[0].Path.last().AsLeaf()
	require.True(t, ok)
	s, ok := leaf.AsText()
	require.True(t, ok)
	assert.Equal(t, "x", s)
}

func TestGroupLazyTriesSmallestCountFirst(t *testing.T) {
	e := chainOfWrapped(3, "x")
	unwrap := NewWrapped(WrappedUnwrap, nil)
	pat := NewGroup(unwrap, Quantifier{Min: 0, Max: intPtr(3), Reluctance: Lazy})
	results := Evaluate(pat, e)
	require.NotEmpty(t, results)
	// The first result should be the zero-repeat match: the envelope
	// itself, still wrapped.
	assert.Equal(t, e.Digest(), results[0].Path.last().Digest())
}

func TestGroupPossessiveOnlyTriesMaxCount(t *testing.T) {
	e := chainOfWrapped(3, "x")
	unwrap := NewWrapped(WrappedUnwrap, nil)
	pat := NewGroup(unwrap, Quantifier{Min: 0, Max: intPtr(3), Reluctance: Possessive})
	results := Evaluate(pat, e)
	require.Len(t, results, 1)
	leaf, ok := results[0].Path.last().AsLeaf()
	require.True(t, ok)
	s, ok := leaf.AsText()
	require.True(t, ok)
	assert.Equal(t, "x", s)
}

func TestGroupMinimumBoundExcludesShorterCounts(t *testing.T) {
	e := chainOfWrapped(1, "x")
	unwrap := NewWrapped(WrappedUnwrap, nil)
	// Require at least 2 unwraps, but only 1 is available: no result.
	pat := NewGroup(unwrap, Quantifier{Min: 2, Max: intPtr(5), Reluctance: Greedy})
	assert.Empty(t, Evaluate(pat, e))
}

// TestGroupZeroOrMoreOnNonProgressingPatternTerminates exercises property
// 10: `(*){0,}` must not loop forever, since Any applied to a leaf makes no
// structural progress.
func TestGroupZeroOrMoreOnNonProgressingPatternTerminates(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewText("x"))
	pat := NewGroup(NewAny(), Quantifier{Min: 0, Max: nil, Reluctance: Greedy})
	results := Evaluate(pat, e)
	require.Len(t, results, 1)
	assert.Equal(t, e.Digest(), results[0].Path.last().Digest())
}

func TestCompileRejectsAtomicPattern(t *testing.T) {
	_, err := Compile(NewAny())
	require.Error(t, err)
	var compileErr *ErrCompile
	assert.ErrorAs(t, err, &compileErr)
}
