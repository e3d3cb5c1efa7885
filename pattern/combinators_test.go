package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/envelope"
)

func TestAndRequiresAllSubpatterns(t *testing.T) {
	e := aliceKnowsBob()
	results := Evaluate(NewAnd(NewAny(), NewSubject(NewTextExact("Alice"))), e)
	require.Len(t, results, 1)

	assert.Len(t, Evaluate(NewAnd(NewSubject(NewTextExact("Alice")), NewSubject(NewTextExact("Eve"))), e), 0)
}

func TestAndMergesCapturesFromEverySubpattern(t *testing.T) {
	e := aliceKnowsBob()
	pat := NewAnd(
		NewCapture("subj", NewSubject(NewTextExact("Alice"))),
		NewCapture("whole", NewAny()),
	)
	results := Evaluate(pat, e)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Captures, "subj")
	assert.Contains(t, results[0].Captures, "whole")
}

func TestOrMatchesSingleAlternative(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewText("Alice"))
	pat := NewOr(NewTextExact("Bob"), NewTextExact("Alice"))
	results := Evaluate(pat, e)
	require.Len(t, results, 1)
}

func TestOrTriesEveryAlternative(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewText("Alice"))
	pat := NewOr(NewTextExact("Alice"), NewAny())
	results := Evaluate(pat, e)
	// Both alternatives match, so both contribute a result.
	assert.Len(t, results, 2)
}

func TestNotKillsMatchWhenInnerMatches(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewText("Alice"))
	assert.Len(t, Evaluate(NewNot(NewTextExact("Alice")), e), 0)
	assert.Len(t, Evaluate(NewNot(NewTextExact("Bob")), e), 1)
}

func TestCaptureRecordsMatchedPath(t *testing.T) {
	e := envelope.NewLeaf(dcbor.NewText("Alice"))
	results := Evaluate(NewCapture("who", NewAny()), e)
	require.Len(t, results, 1)
	paths, ok := results[0].Captures["who"]
	require.True(t, ok)
	require.Len(t, paths, 1)
	assert.Equal(t, e.Digest(), paths[0].last().Digest())
}

func TestTraverseChainsThroughAssertionToPredicate(t *testing.T) {
	e := aliceKnowsBob()
	assertion := e.Assertions()[0]
	pat := NewTraverse(NewAssertion(nil, nil), NewPredicate(NewTextExact("knows")))
	results := Evaluate(pat, assertion)
	require.Len(t, results, 1)
}
