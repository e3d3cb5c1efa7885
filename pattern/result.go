package pattern

import "github.com/gordian-systems/go-envelope/envelope"

// Path is an ordered list of envelopes from the envelope a match started at
// down to the matched subtree, inclusive of both ends.
type Path []*envelope.Envelope

// last returns the final (currently matched) envelope in the path.
func (p Path) last() *envelope.Envelope {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// digestKey is Search's dedup key: the ordered list of each path element's
// digest, joined so that two structurally distinct traversals that
// coincide on every digest collapse to one result (spec.md §9(c)).
func (p Path) digestKey() string {
	b := make([]byte, 0, 32*len(p))
	for _, e := range p {
		d := e.Digest()
		b = append(b, d[:]...)
	}
	return string(b)
}

// Result is one match: the path to the matched subtree plus every named
// capture accumulated along the way, each capture itself a list of paths
// (a capture inside a Repeat or Search can fire more than once).
type Result struct {
	Path     Path
	Captures map[string][]Path
}

func mergeCaptures(dst map[string][]Path, src map[string][]Path) map[string][]Path {
	if dst == nil {
		dst = map[string][]Path{}
	}
	for name, paths := range src {
		dst[name] = append(dst[name], paths...)
	}
	return dst
}

func prependPath(e *envelope.Envelope, paths []Path) []Path {
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = append(Path{e}, p...)
	}
	return out
}
