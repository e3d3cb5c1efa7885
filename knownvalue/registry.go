package knownvalue

import (
	"fmt"
	"sync"
)

// Value is a well-known predicate or object: a small unsigned integer that
// stands in for a name, so two envelopes referring to "knows" compare and
// hash identically regardless of which Go string literal built them.
type Value struct {
	n uint64
}

// New wraps an arbitrary integer as a Value without registering a name for
// it. Most callers want a value from the default registry instead.
func New(n uint64) Value { return Value{n: n} }

// Uint64 is the value's underlying integer.
func (v Value) Uint64() uint64 { return v.n }

// String renders the value's registered name, or "#<n>" if unregistered.
func (v Value) String() string {
	if name, ok := DefaultRegistry.Name(v); ok {
		return name
	}
	return fmt.Sprintf("#%d", v.n)
}

// Registry is a process-wide, additive map between small integers and the
// names envelope predicates/objects display them as.
type Registry struct {
	mu     sync.RWMutex
	names  map[uint64]string
	byName map[string]uint64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[uint64]string), byName: make(map[string]uint64)}
}

// Register binds n to name and returns the resulting Value. Re-registering
// the same (n, name) pair is a no-op; registering a different name for an
// already-bound n panics, since the default registry's bindings are set up
// once at package init and a collision there is a programmer error.
func (r *Registry) Register(n uint64, name string) Value {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.names[n]; ok {
		if existing != name {
			panic(fmt.Sprintf("knownvalue: %d already registered as %q, cannot rebind to %q", n, existing, name))
		}
		return Value{n: n}
	}
	r.names[n] = name
	r.byName[name] = n
	return Value{n: n}
}

// Name returns v's registered name, if any.
func (r *Registry) Name(v Value) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[v.n]
	return name, ok
}

// ByName looks up a Value by its registered name.
func (r *Registry) ByName(name string) (Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byName[name]
	if !ok {
		return Value{}, false
	}
	return Value{n: n}, true
}

// DefaultRegistry holds the predicates and objects the envelope package's
// own operators rely on by name (addSalt, sign, addRecipient, sskrSplit),
// plus a few general-purpose ones every envelope notation example uses.
var DefaultRegistry = NewRegistry()

var (
	IsA          = DefaultRegistry.Register(1, "isA")
	ID           = DefaultRegistry.Register(2, "id")
	Knows        = DefaultRegistry.Register(3, "knows")
	Salt         = DefaultRegistry.Register(4, "salt")
	Signed       = DefaultRegistry.Register(5, "signed")
	HasRecipient = DefaultRegistry.Register(6, "hasRecipient")
	SskrShare    = DefaultRegistry.Register(7, "sskrShare")
	Note         = DefaultRegistry.Register(8, "note")
)
