package envelope

// EdgeKind names the relationship between a visited envelope and whichever
// parent walked to it (spec.md §4.3's "Walking" section).
type EdgeKind int

const (
	EdgeNone EdgeKind = iota
	EdgeSubject
	EdgeAssertion
	EdgePredicate
	EdgeObject
	EdgeContent
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeNone:
		return "none"
	case EdgeSubject:
		return "subject"
	case EdgeAssertion:
		return "assertion"
	case EdgePredicate:
		return "predicate"
	case EdgeObject:
		return "object"
	case EdgeContent:
		return "content"
	default:
		return "unknown"
	}
}

// Visitor is called once per visited envelope. It returns the state to
// thread into sibling/child calls and whether walking should stop entirely.
type Visitor func(e *Envelope, level int, edge EdgeKind, state any) (newState any, stop bool)

// WalkStructural visits every envelope case, including the synthetic inner
// nodes (Wrapped's content, Assertion's predicate/object) that WalkTree
// skips.
func WalkStructural(e *Envelope, visitor Visitor, state any) bool {
	return walk(e, 0, EdgeNone, visitor, state, true)
}

// WalkTree visits only semantically meaningful children: Nodes are not
// reported themselves, only their subject and assertions.
func WalkTree(e *Envelope, visitor Visitor, state any) bool {
	return walk(e, 0, EdgeNone, visitor, state, false)
}

// walk returns true if the visitor requested a stop.
func walk(e *Envelope, level int, edge EdgeKind, visitor Visitor, state any, structural bool) bool {
	skip := !structural && e.kind == KindNode
	if !skip {
		newState, stop := visitor(e, level, edge, state)
		if stop {
			return true
		}
		state = newState
	}

	switch e.kind {
	case KindNode:
		if walk(e.subject, level+1, EdgeSubject, visitor, state, structural) {
			return true
		}
		for _, a := range e.assertions {
			if walk(a, level+1, EdgeAssertion, visitor, state, structural) {
				return true
			}
		}
	case KindWrapped:
		if walk(e.inner, level+1, EdgeContent, visitor, state, structural) {
			return true
		}
	case KindAssertion:
		if walk(e.predicate, level+1, EdgePredicate, visitor, state, structural) {
			return true
		}
		if walk(e.object, level+1, EdgeObject, visitor, state, structural) {
			return true
		}
	}
	return false
}
