package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

func TestElideRemovingPreservesDigestAndElidesTarget(t *testing.T) {
	e := aliceKnowsBob()
	obj := NewLeaf(dcbor.NewText("Bob"))
	targets := map[Digest]bool{obj.Digest(): true}

	reduced := e.ElideRemoving(targets)
	require.Equal(t, e.Digest(), reduced.Digest())

	var found bool
	WalkStructural(reduced, func(v *Envelope, level int, edge EdgeKind, state any) (any, bool) {
		if v.kind == KindElided {
			found = true
		}
		return state, false
	}, nil)
	assert.True(t, found)
}

func TestElideRevealingKeepsOnlyTargetPaths(t *testing.T) {
	e := aliceKnowsBob()
	subject := NewLeaf(dcbor.NewText("Alice"))
	targets := map[Digest]bool{subject.Digest(): true}

	revealed := e.ElideRevealing(targets)
	require.Equal(t, e.Digest(), revealed.Digest())

	assert.Equal(t, subject.Digest(), revealed.Subject().Digest())
	for _, a := range revealed.Assertions() {
		assert.Equal(t, KindElided, a.kind)
	}
}

func TestAddSaltChangesDigest(t *testing.T) {
	e := NewLeaf(dcbor.NewText("Alice"))
	salted := e.AddSalt()
	assert.NotEqual(t, e.Digest(), salted.Digest())
	pred, _, ok := salted.Assertions()[0].AsAssertion()
	require.True(t, ok)
	kv, ok := pred.AsKnownValue()
	require.True(t, ok)
	assert.Equal(t, knownvalue.Salt, kv)
}
