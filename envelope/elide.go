package envelope

// Elide replaces e wholesale with its elided form: only the digest
// survives. elide(E).Digest() == E.Digest() always (spec.md §3.3).
func (e *Envelope) Elide() *Envelope {
	return NewElided(e.Digest())
}

// ElideRemoving structurally replaces every subtree whose digest is in
// targets with its elided form, recursing into everything else.
func (e *Envelope) ElideRemoving(targets map[Digest]bool) *Envelope {
	if targets[e.Digest()] {
		return e.Elide()
	}
	switch e.kind {
	case KindNode:
		subj := e.subject.ElideRemoving(targets)
		newAssertions := make([]*Envelope, len(e.assertions))
		for i, a := range e.assertions {
			newAssertions[i] = a.ElideRemoving(targets)
		}
		return newNode(subj, newAssertions)
	case KindAssertion:
		return &Envelope{
			kind:      KindAssertion,
			predicate: e.predicate.ElideRemoving(targets),
			object:    e.object.ElideRemoving(targets),
		}
	case KindWrapped:
		return &Envelope{kind: KindWrapped, inner: e.inner.ElideRemoving(targets)}
	default:
		return e
	}
}

// ElideRevealing structurally elides every subtree whose digest is not in
// targets and is not required to reach one that is — i.e. it keeps open
// only the paths leading to a target, eliding every sibling subtree along
// the way, and leaves a matched target's own subtree fully intact.
func (e *Envelope) ElideRevealing(targets map[Digest]bool) *Envelope {
	if targets[e.Digest()] {
		return e
	}
	if !containsTarget(e, targets) {
		return e.Elide()
	}
	switch e.kind {
	case KindNode:
		subj := e.subject.ElideRevealing(targets)
		newAssertions := make([]*Envelope, len(e.assertions))
		for i, a := range e.assertions {
			newAssertions[i] = a.ElideRevealing(targets)
		}
		return newNode(subj, newAssertions)
	case KindAssertion:
		return &Envelope{
			kind:      KindAssertion,
			predicate: e.predicate.ElideRevealing(targets),
			object:    e.object.ElideRevealing(targets),
		}
	case KindWrapped:
		return &Envelope{kind: KindWrapped, inner: e.inner.ElideRevealing(targets)}
	default:
		// Unreachable: containsTarget would have been false above for any
		// case with no substructure and no matching digest.
		return e.Elide()
	}
}

// containsTarget reports whether e or any descendant's digest is in targets.
func containsTarget(e *Envelope, targets map[Digest]bool) bool {
	if targets[e.Digest()] {
		return true
	}
	switch e.kind {
	case KindNode:
		if containsTarget(e.subject, targets) {
			return true
		}
		for _, a := range e.assertions {
			if containsTarget(a, targets) {
				return true
			}
		}
	case KindAssertion:
		return containsTarget(e.predicate, targets) || containsTarget(e.object, targets)
	case KindWrapped:
		return containsTarget(e.inner, targets)
	}
	return false
}
