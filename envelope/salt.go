package envelope

import (
	"github.com/google/uuid"

	"github.com/gordian-systems/go-envelope/dcbor"
	"github.com/gordian-systems/go-envelope/knownvalue"
)

// AddSalt extends e with a `"salt": bytes(>=8)` assertion (spec.md §4.3),
// which perturbs the envelope's digest without adding meaning — useful
// before eliding a low-entropy leaf to defeat dictionary correlation
// attacks against its digest. The salt itself is a random UUID's 16 bytes,
// well above the 8-byte floor.
func (e *Envelope) AddSalt() *Envelope {
	id := uuid.New()
	saltBytes := id[:]
	return e.AddAssertion(NewKnownValue(knownvalue.Salt), NewLeaf(dcbor.NewBytes(saltBytes)))
}
