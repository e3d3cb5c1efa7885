// Package envelope implements the Gordian Envelope data model: an
// eight-case, hash-addressable recursive document tree (Node, Leaf,
// Wrapped, Assertion, KnownValue, Elided, Encrypted, Compressed) whose
// SHA-256 digest algebra is stable under elision, encryption, and
// compression — so a signature over a tree remains valid over any
// redacted, encrypted, or compressed form of it.
package envelope
