package pattern

import "github.com/gordian-systems/go-envelope/envelope"

// structuralChildren lists e's children in the visitation order Search
// uses: subject before assertions for a Node, the sole content for
// Wrapped, predicate before object for an Assertion.
func structuralChildren(e *envelope.Envelope) []*envelope.Envelope {
	switch e.Kind() {
	case envelope.KindNode:
		children := make([]*envelope.Envelope, 0, len(e.Assertions())+1)
		children = append(children, e.Subject())
		children = append(children, e.Assertions()...)
		return children
	case envelope.KindWrapped:
		inner, _ := e.AsWrapped()
		return []*envelope.Envelope{inner}
	case envelope.KindAssertion:
		pred, obj, _ := e.AsAssertion()
		return []*envelope.Envelope{pred, obj}
	default:
		return nil
	}
}

type searchFrame struct {
	env    *envelope.Envelope
	prefix Path
}

// runSearch visits every envelope reachable from root (root itself
// first), evaluating inner at each and deduping by the ordered digest
// list of the resulting path (spec.md §9(c)). It is the OpSearch VM
// handler's engine (vm.go) — also the whole of Search's compiled form,
// since Search's only search space is which tree node the match occurs
// at, and that space is walked here with an explicit stack rather than
// Go recursion, since envelope depth is caller-controlled and unbounded.
func runSearch(inner *Pattern, root *envelope.Envelope) []Result {
	stack := []searchFrame{{env: root, prefix: Path{root}}}
	seen := map[string]bool{}
	var out []Result

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, r := range Evaluate(inner, f.env) {
			full := append(append(Path{}, f.prefix[:len(f.prefix)-1]...), r.Path...)
			key := full.digestKey()
			if !seen[key] {
				seen[key] = true
				out = append(out, Result{Path: full, Captures: r.Captures})
			}
		}

		children := structuralChildren(f.env)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, searchFrame{env: children[i], prefix: append(append(Path{}, f.prefix...), children[i])})
		}
	}
	return out
}
