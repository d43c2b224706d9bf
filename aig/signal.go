package aig

// Ref is a signed reference to a node: a node index paired with one bit of
// complementation. Polarity lives on the edge, never on the node it points
// to (spec invariant: "polarity on edges only").
type Ref struct {
	index uint32
	comp  bool
}

// NullRef is the zero value; it is never a valid signal produced by a
// Network and is used only as a sentinel by callers that need one (e.g. an
// unused third child slot on a two-input gate).
var NullRef = Ref{}

func newRef(index int, comp bool) Ref {
	return Ref{index: uint32(index), comp: comp}
}

// NewRef builds a reference to an arbitrary node index, for packages
// (reduce, resub) that walk the arena by raw index and need a signal to
// pass back into Network methods.
func NewRef(index int, comp bool) Ref {
	return newRef(index, comp)
}

// Index returns the node index this reference points at.
func (r Ref) Index() int { return int(r.index) }

// IsComplemented reports whether the edge carries a complement bit.
func (r Ref) IsComplemented() bool { return r.comp }

// Not returns the same node reference with the complement bit flipped.
func (r Ref) Not() Ref { return Ref{index: r.index, comp: !r.comp} }

// WithPolarity returns a reference to the same node with the given
// complement bit.
func (r Ref) WithPolarity(c bool) Ref { return Ref{index: r.index, comp: c} }

// Less orders references by (index, complement), used to keep fanin pairs
// in the canonical order required by invariant 2.
func (r Ref) Less(other Ref) bool {
	if r.index != other.index {
		return r.index < other.index
	}
	return !r.comp && other.comp
}
