// Package aig implements the network store: a hash-consed arena of
// two-(or three-)input gate nodes with fanout counts, strashing, and event
// hooks, as specified for the simulation-guided resubstitution engine's
// underlying data model.
package aig

import "fmt"

// Flavor names the dominant Boolean basis a Network is built from. It does
// not forbid mixing gate kinds (an XAG is, structurally, an AIG that also
// allows XOR nodes); it documents intent and is carried into the window
// networks package window builds. No package picks a resynthesis engine
// from it.
type Flavor uint8

const (
	FlavorAIG Flavor = iota
	FlavorXAG
	FlavorMIG
)

func (f Flavor) String() string {
	switch f {
	case FlavorAIG:
		return "aig"
	case FlavorXAG:
		return "xag"
	case FlavorMIG:
		return "mig"
	default:
		return "?"
	}
}

// strashKey is the structural-hashing key: a gate kind plus its ordered
// fanins. Equal keys among live nodes would violate invariant 3; Network
// never allows that to happen for non-don't-touch nodes.
type strashKey struct {
	kind GateKind
	c0   Ref
	c1   Ref
	c2   Ref
}

// Network is the arena: an append-only (except for tombstoning) slice of
// nodes, numbered from 0, plus the primary input/output lists and the
// strash table. Node 0 is always the constant-false sentinel.
type Network struct {
	Flavor Flavor

	nodes   []node
	pis     []int
	pos     []Ref
	strash  map[strashKey]int
	boxes   []*Box
	stampCt uint32

	// parents is the fanout index: for each node index, the set of live
	// node indices that reference it as a fanin. Spec §4.1 lists a fanout
	// index as something views maintain for reverse-edge needs; the
	// substitution protocol (§4.7, step 4: "For every live node p that has
	// o as a fanin") cannot be implemented without one, so Network
	// maintains it directly rather than pushing that cost onto a view.
	parents map[int]map[int]struct{}

	onAdd      []AddSubscriber
	onModified []ModifiedSubscriber
	onDelete   []DeleteSubscriber

	// Strict controls whether cycle/invariant assertions panic (intended
	// for tests and debug builds) rather than being skipped. Per spec §9's
	// resolved Open Question, a rewrite should always verify acyclicity
	// rather than leave it optional; New defaults Strict to true.
	Strict bool
}

// New returns an empty Network of the given flavor, with node 0 already
// allocated as the constant-false sentinel.
func New(flavor Flavor) *Network {
	net := &Network{
		Flavor:  flavor,
		strash:  make(map[strashKey]int),
		parents: make(map[int]map[int]struct{}),
		Strict:  true,
	}
	net.nodes = append(net.nodes, node{kind: GateKindConst})
	return net
}

// GetConstant returns the signal for the constant node with the requested
// polarity (v=false is the constant-false sentinel, v=true its complement).
func (net *Network) GetConstant(v bool) Ref {
	return newRef(0, v)
}

// IsConstant reports whether s refers to the constant node (regardless of
// polarity).
func (net *Network) IsConstant(s Ref) bool { return s.Index() == 0 }

// CreatePI allocates a fresh primary input and returns its signal.
func (net *Network) CreatePI() Ref {
	idx := len(net.nodes)
	net.nodes = append(net.nodes, node{kind: GateKindPI})
	net.pis = append(net.pis, idx)
	net.fireAdd(idx)
	return newRef(idx, false)
}

// CreatePO registers s as an output, incrementing the fanout of its node.
func (net *Network) CreatePO(s Ref) {
	net.pos = append(net.pos, s)
	net.incFanout(s.Index())
}

// NumPIs, NumPOs, Size, NumGates report arena bookkeeping used by views and
// by synthstats for progress reporting.
func (net *Network) NumPIs() int { return len(net.pis) }
func (net *Network) NumPOs() int { return len(net.pos) }
func (net *Network) Size() int   { return len(net.nodes) }

// NumGates returns the count of live, non-PI, non-constant nodes.
func (net *Network) NumGates() int {
	count := 0
	for i := 1; i < len(net.nodes); i++ {
		n := &net.nodes[i]
		if n.isLive() && n.kind != GateKindPI {
			count++
		}
	}
	return count
}

// PIs returns the ordered list of primary input signals.
func (net *Network) PIs() []Ref {
	out := make([]Ref, len(net.pis))
	for i, idx := range net.pis {
		out[i] = newRef(idx, false)
	}
	return out
}

// POs returns the ordered list of primary output signals.
func (net *Network) POs() []Ref {
	out := make([]Ref, len(net.pos))
	copy(out, net.pos)
	return out
}

// IsPI reports whether node index n is a primary input.
func (net *Network) IsPI(n int) bool { return net.nodes[n].kind == GateKindPI }

// IsDead reports whether node index n has been taken out.
func (net *Network) IsDead(n int) bool { return net.nodes[n].dead }

// Kind returns the gate kind of node index n.
func (net *Network) Kind(n int) GateKind { return net.nodes[n].kind }

// FaninAt returns the i-th fanin signal of node n (0 <= i < numFanins).
func (net *Network) FaninAt(n, i int) Ref { return net.nodes[n].children[i] }

// Fanins returns every fanin signal of node n.
func (net *Network) Fanins(n int) []Ref {
	nd := &net.nodes[n]
	out := make([]Ref, nd.kind.numFanins())
	copy(out, nd.fanins())
	return out
}

// FanoutSize returns node n's recorded fanout count.
func (net *Network) FanoutSize(n int) int { return int(net.nodes[n].fanout) }

// IsDontTouch reports whether node n is flagged don't-touch.
func (net *Network) IsDontTouch(n int) bool { return net.nodes[n].dontTouch }

// SetDontTouch flags node n as don't-touch: it is excluded from strashing,
// never substituted, and (if part of a box) terminal to windowing.
func (net *Network) SetDontTouch(n int) { net.nodes[n].dontTouch = true }

// ClearDontTouch lifts a previous SetDontTouch/CreateDontTouch flag, letting
// n participate in strashing and substitution again. It does not retroactively
// strash n: if another live node already has the same (kind, fanins), the
// two remain distinct until something substitutes one for the other.
func (net *Network) ClearDontTouch(n int) { net.nodes[n].dontTouch = false }

// NewStamp returns a fresh monotonically increasing color stamp for use by
// traversal algorithms that need per-node visited marks without a global
// reset (spec §9, "Global visited flags").
func (net *Network) NewStamp() uint32 {
	net.stampCt++
	return net.stampCt
}

// Stamp returns node n's current color stamp.
func (net *Network) Stamp(n int) uint32 { return net.nodes[n].stamp }

// SetStamp sets node n's color stamp.
func (net *Network) SetStamp(n int, s uint32) { net.nodes[n].stamp = s }

// AddBox registers a box (black or white) whose boundary signals become
// terminal to windowing.
func (net *Network) AddBox(b *Box) {
	net.boxes = append(net.boxes, b)
	for _, in := range b.Inputs {
		net.nodes[in.Index()].box = b
	}
	for _, out := range b.Outputs {
		net.nodes[out.Index()].box = b
	}
}

// BoxOf returns the box node n is a boundary of, or nil.
func (net *Network) BoxOf(n int) *Box { return net.nodes[n].box }

func (net *Network) incFanout(n int) {
	net.nodes[n].fanout++
}

func (net *Network) decFanout(n int) uint32 {
	net.nodes[n].fanout--
	return net.nodes[n].fanout
}

func (net *Network) addParent(child, parent int) {
	set, ok := net.parents[child]
	if !ok {
		set = make(map[int]struct{})
		net.parents[child] = set
	}
	set[parent] = struct{}{}
}

func (net *Network) removeParent(child, parent int) {
	if set, ok := net.parents[child]; ok {
		delete(set, parent)
		if len(set) == 0 {
			delete(net.parents, child)
		}
	}
}

// ParentsOf returns the set of live node indices that reference n as a
// fanin, in no particular order.
func (net *Network) ParentsOf(n int) []int {
	set := net.parents[n]
	out := make([]int, 0, len(set))
	for p := range set {
		if !net.nodes[p].dead {
			out = append(out, p)
		}
	}
	return out
}

// assertAcyclicEdge panics (in Strict mode) if child refers to an index >= n,
// enforcing invariant 1. Distinct from the build-tag-gated, whole-network
// assertAcyclic in assert_debug.go/assert_release.go: this one runs on every
// gate creation, Strict-gated rather than build-tag-gated, and checks a
// single new edge rather than walking the arena.
func (net *Network) assertAcyclicEdge(n int, child Ref) {
	if !net.Strict {
		return
	}
	if child.Index() >= n {
		panic(InvariantViolation(fmt.Sprintf("node %d: fanin %d would create a cycle", n, child.Index())))
	}
}

// InvariantViolation is the panic value raised when a Strict Network
// detects a structural invariant breach. Per spec §7, invariant violations
// are fatal and not meant to be recovered mid-operation; packages that
// expose a public error-returning API may choose to recover it at their own
// boundary (see package resub's driver loop, which never recovers it and
// lets it propagate, matching "fatal only if internal invariants break").
type InvariantViolation string

func (e InvariantViolation) Error() string { return string(e) }

func canonicalAnd(a, b Ref) (Ref, Ref) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

func canonicalXor(a, b Ref) (Ref, Ref) {
	// Invariant 2: for XOR, child0.index > child1.index.
	if a.Less(b) {
		return b, a
	}
	return a, b
}

// CreateAnd returns a signal computing a AND b, applying trivial-case
// reduction, canonical fanin ordering, and strash lookup before allocating
// a new node (spec §4.1).
func (net *Network) CreateAnd(a, b Ref) Ref {
	if a == b {
		return a
	}
	if a == b.Not() {
		return net.GetConstant(false)
	}
	if net.IsConstant(a) {
		if a.IsComplemented() {
			return b
		}
		return net.GetConstant(false)
	}
	if net.IsConstant(b) {
		if b.IsComplemented() {
			return a
		}
		return net.GetConstant(false)
	}

	c0, c1 := canonicalAnd(a, b)
	return net.createGate(GateKindAnd, c0, c1, NullRef)
}

// CreateXor returns a signal computing a XOR b, with trivial-case reduction
// and canonical fanin ordering analogous to CreateAnd but with the opposite
// order (invariant 2).
func (net *Network) CreateXor(a, b Ref) Ref {
	if a == b {
		return net.GetConstant(false)
	}
	if a == b.Not() {
		return net.GetConstant(true)
	}
	if net.IsConstant(a) {
		if a.IsComplemented() {
			return b.Not()
		}
		return b
	}
	if net.IsConstant(b) {
		if b.IsComplemented() {
			return a.Not()
		}
		return a
	}

	c0, c1 := canonicalXor(a, b)
	return net.createGate(GateKindXor, c0, c1, NullRef)
}

// CreateMaj returns a signal computing the 3-input majority of a, b, c,
// used by MIG-flavored networks and by the MIG resynthesis engine's
// replacement circuits.
func (net *Network) CreateMaj(a, b, c Ref) Ref {
	if a == b || a == c {
		return a
	}
	if b == c {
		return b
	}
	if a == b.Not() {
		return net.createMajPair(c, a, b)
	}
	if a == c.Not() {
		return net.createMajPair(b, a, c)
	}
	if b == c.Not() {
		return net.createMajPair(a, b, c)
	}
	if net.IsConstant(a) {
		if a.IsComplemented() {
			return net.CreateAnd(b.Not(), c.Not()).Not() // MAJ(1,b,c) = OR(b,c), De Morgan
		}
		return net.CreateAnd(b, c) // MAJ(0,b,c) = AND(b,c)
	}
	if net.IsConstant(b) {
		return net.CreateMaj(b, a, c)
	}
	if net.IsConstant(c) {
		return net.CreateMaj(c, a, b)
	}

	refs := [3]Ref{a, b, c}
	sortRefs3(&refs)
	return net.createGate(GateKindMaj, refs[0], refs[1], refs[2])
}

// createMajPair handles MAJ(x, y, ¬y) == x, the complementary-pair trivial
// case for majority, with x the surviving operand.
func (net *Network) createMajPair(x, _, _ Ref) Ref { return x }

func sortRefs3(r *[3]Ref) {
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && r[j].Less(r[j-1]); j-- {
			r[j], r[j-1] = r[j-1], r[j]
		}
	}
}

// CreateXor3 returns the 3-input XOR of a, b, c. Nothing in any Flavor's
// create_* surface allocates one directly from outside a window, but
// replacement candidates decoded from an index list may reference one.
func (net *Network) CreateXor3(a, b, c Ref) Ref {
	return net.CreateXor(net.CreateXor(a, b), c)
}

// createGate performs the strash lookup and, on a miss, allocates a new
// node with the given already-canonicalized fanins.
func (net *Network) createGate(kind GateKind, c0, c1, c2 Ref) Ref {
	key := strashKey{kind: kind, c0: c0, c1: c1, c2: c2}
	if idx, ok := net.strash[key]; ok && !net.nodes[idx].dead {
		return newRef(idx, false)
	}

	idx := len(net.nodes)
	net.assertAcyclicEdge(idx, c0)
	net.assertAcyclicEdge(idx, c1)
	if c2 != NullRef {
		net.assertAcyclicEdge(idx, c2)
	}

	n := node{kind: kind, children: [3]Ref{c0, c1, c2}}
	net.nodes = append(net.nodes, n)
	net.incFanout(c0.Index())
	net.incFanout(c1.Index())
	net.addParent(c0.Index(), idx)
	net.addParent(c1.Index(), idx)
	if kind.numFanins() == 3 {
		net.incFanout(c2.Index())
		net.addParent(c2.Index(), idx)
	}
	net.strash[key] = idx
	net.fireAdd(idx)
	return newRef(idx, false)
}

// CreateDontTouch allocates a node identical in shape to one CreateAnd
// would build, but bypasses the strash table (a fresh node is always
// created) and marks it don't-touch, per spec §4.1.
func (net *Network) CreateDontTouch(kind GateKind, children ...Ref) Ref {
	idx := len(net.nodes)
	var cs [3]Ref
	copy(cs[:], children)
	for i := 0; i < kind.numFanins(); i++ {
		net.assertAcyclicEdge(idx, cs[i])
	}
	n := node{kind: kind, children: cs, dontTouch: true}
	net.nodes = append(net.nodes, n)
	for i := 0; i < kind.numFanins(); i++ {
		net.incFanout(cs[i].Index())
		net.addParent(cs[i].Index(), idx)
	}
	net.fireAdd(idx)
	return newRef(idx, false)
}
