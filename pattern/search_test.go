package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/envelope"
)

func TestSearchFindsMatchAnywhereInTree(t *testing.T) {
	e := aliceKnowsBob()
	results := Evaluate(NewSearch(NewTextExact("Bob")), e)
	require.Len(t, results, 1)
	assert.Equal(t, "Bob", mustText(t, results[0].Path.last()))
}

func TestSearchVisitsRootFirst(t *testing.T) {
	e := aliceKnowsBob()
	results := Evaluate(NewSearch(NewAny()), e)
	require.NotEmpty(t, results)
	assert.Equal(t, e.Digest(), results[0].Path.last().Digest())
}

func TestSearchDedupesByDigestPath(t *testing.T) {
	alice := envelope.NewLeaf(dcbor.NewText("Alice"))
	knows1 := envelope.NewLeaf(dcbor.NewText("knows"))
	bob := envelope.NewLeaf(dcbor.NewText("Bob"))
	knows2 := envelope.NewLeaf(dcbor.NewText("knows"))
	charlie := envelope.NewLeaf(dcbor.NewText("Charlie"))
	e := alice.AddAssertion(knows1, bob).AddAssertion(knows2, charlie)

	results := Evaluate(NewSearch(NewTextExact("knows")), e)
	// The two "knows" predicate leaves share one digest, but they sit
	// under different assertions (their objects differ), so their digest
	// paths differ: both are found, with no duplicate entries for either.
	seen := map[string]bool{}
	for _, r := range results {
		key := r.Path.digestKey()
		assert.False(t, seen[key], "duplicate path returned by Search")
		seen[key] = true
	}
	assert.Len(t, results, 2)
}

func TestSearchFindsNothingWhenPatternNeverMatches(t *testing.T) {
	e := aliceKnowsBob()
	assert.Empty(t, Evaluate(NewSearch(NewTextExact("Nobody")), e))
}
