package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

func TestWalkTreeSkipsNodesButVisitsLeaves(t *testing.T) {
	e := aliceKnowsBob()
	var kinds []Kind
	WalkTree(e, func(v *Envelope, level int, edge EdgeKind, state any) (any, bool) {
		kinds = append(kinds, v.kind)
		return state, false
	}, nil)
	for _, k := range kinds {
		assert.NotEqual(t, KindNode, k)
	}
	assert.Contains(t, kinds, KindLeaf)
	assert.Contains(t, kinds, KindAssertion)
}

func TestWalkStructuralVisitsNodes(t *testing.T) {
	e := aliceKnowsBob()
	var sawNode bool
	WalkStructural(e, func(v *Envelope, level int, edge EdgeKind, state any) (any, bool) {
		if v.kind == KindNode {
			sawNode = true
		}
		return state, false
	}, nil)
	assert.True(t, sawNode)
}

func TestWalkStopPropagates(t *testing.T) {
	e := NewLeaf(dcbor.NewText("Alice")).
		AddAssertion(NewKnownValue(knownvalue.New(100)), NewLeaf(dcbor.NewText("a"))).
		AddAssertion(NewKnownValue(knownvalue.New(101)), NewLeaf(dcbor.NewText("b")))
	visits := 0
	stopped := WalkStructural(e, func(v *Envelope, level int, edge EdgeKind, state any) (any, bool) {
		visits++
		return state, visits == 1
	}, nil)
	assert.True(t, stopped)
	assert.Equal(t, 1, visits)
}

func TestWalkEdgeKindsReportedCorrectly(t *testing.T) {
	e := aliceKnowsBob()
	edges := map[EdgeKind]bool{}
	WalkStructural(e, func(v *Envelope, level int, edge EdgeKind, state any) (any, bool) {
		edges[edge] = true
		return state, false
	}, nil)
	assert.True(t, edges[EdgeSubject])
	assert.True(t, edges[EdgeAssertion])
	assert.True(t, edges[EdgePredicate])
	assert.True(t, edges[EdgeObject])
}
