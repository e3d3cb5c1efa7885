package pattern

import "github.com/gordian-systems/go-envelope/envelope"

// Match adds nothing of its own and simply runs p against root through
// Evaluate; it is the package's single public entry point, kept separate
// from Evaluate so callers never need to know which pattern kinds route
// through bytecode.
func Match(p *Pattern, root *envelope.Envelope) []Result {
	return Evaluate(p, root)
}
