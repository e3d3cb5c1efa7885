package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

func aliceKnowsBob() *Envelope {
	e := NewLeaf(dcbor.NewText("Alice"))
	return e.AddAssertion(NewKnownValue(knownvalue.Knows), NewLeaf(dcbor.NewText("Bob")))
}

func TestDigestIsDeterministic(t *testing.T) {
	a := aliceKnowsBob()
	b := aliceKnowsBob()
	assert.Equal(t, a.Digest(), b.Digest())
}

func TestDigestDistinguishesDifferentSubjects(t *testing.T) {
	a := NewLeaf(dcbor.NewText("Alice"))
	b := NewLeaf(dcbor.NewText("Bob"))
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestAssertionOrderDoesNotAffectDigest(t *testing.T) {
	base := NewLeaf(dcbor.NewText("Alice"))
	a := base.AddAssertion(NewKnownValue(knownvalue.Knows), NewLeaf(dcbor.NewText("Bob")))
	a = a.AddAssertion(NewKnownValue(knownvalue.Note), NewLeaf(dcbor.NewText("hello")))

	b := base.AddAssertion(NewKnownValue(knownvalue.Note), NewLeaf(dcbor.NewText("hello")))
	b = b.AddAssertion(NewKnownValue(knownvalue.Knows), NewLeaf(dcbor.NewText("Bob")))

	require.Equal(t, a.Digest(), b.Digest())
}

func TestAddAssertionDedupesByDigest(t *testing.T) {
	e := aliceKnowsBob()
	before := len(e.Assertions())
	e2 := e.AddAssertion(NewKnownValue(knownvalue.Knows), NewLeaf(dcbor.NewText("Bob")))
	assert.Equal(t, before, len(e2.Assertions()))
	assert.Equal(t, e.Digest(), e2.Digest())
}

func TestElidePreservesDigest(t *testing.T) {
	e := aliceKnowsBob()
	elided := e.Elide()
	assert.Equal(t, e.Digest(), elided.Digest())
	_, ok := elided.AsElided()
	assert.True(t, ok)
}
