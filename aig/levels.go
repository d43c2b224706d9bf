package aig

// LevelView maintains a depth (logic-level) estimate for every node by
// subscribing to the network's add/modify/delete events. It implements the
// "eager recursive recomputation of fanouts" strategy spec §4.7 names as one
// of two acceptable level-update strategies (the other, a precise
// topologically-ordered sweep, is left to callers that need exactness over
// speed, since the two are behaviorally equivalent at a fixed point).
type LevelView struct {
	net *Network
}

// NewLevelView attaches a LevelView to net and returns it. The view
// subscribes to net's events for its lifetime; net must not outlive
// multiple independent LevelViews if callers care about subscription
// ordering between them.
func NewLevelView(net *Network) *LevelView {
	v := &LevelView{net: net}
	net.OnAdd(v.handleAdd)
	net.OnModified(v.handleModified)
	net.OnDelete(v.handleDelete)
	return v
}

func (v *LevelView) handleAdd(n int) {
	v.recompute(n)
}

func (v *LevelView) handleModified(n int, _ [3]Ref) {
	v.recompute(n)
	for _, p := range v.net.ParentsOf(n) {
		v.recomputeFanoutCone(p)
	}
}

func (v *LevelView) handleDelete(n int) {
	v.net.nodes[n].level = 0
}

func (v *LevelView) recompute(n int) {
	nd := &v.net.nodes[n]
	if nd.kind == GateKindPI || nd.kind == GateKindConst {
		nd.level = 0
		return
	}
	max := int32(0)
	for _, f := range nd.fanins() {
		if l := v.net.nodes[f.Index()].level + 1; l > max {
			max = l
		}
	}
	nd.level = max
}

// recomputeFanoutCone re-levels n and, if its level changed, every live
// parent transitively, bounding the eager strategy's cost to the cone that
// actually moved.
func (v *LevelView) recomputeFanoutCone(n int) {
	before := v.net.nodes[n].level
	v.recompute(n)
	if v.net.nodes[n].level == before {
		return
	}
	for _, p := range v.net.ParentsOf(n) {
		v.recomputeFanoutCone(p)
	}
}

// Level returns node n's current depth estimate.
func (v *LevelView) Level(n int) int { return int(v.net.nodes[n].level) }

// Depth returns the network's overall depth: the maximum level among all
// primary outputs.
func (v *LevelView) Depth() int {
	max := 0
	for _, po := range v.net.pos {
		if l := v.Level(po.Index()); l > max {
			max = l
		}
	}
	return max
}

// RecomputeAll performs a precise topologically-ordered sweep over every
// live node, used after bulk structural changes where incremental
// maintenance would visit more nodes than a full pass.
func (v *LevelView) RecomputeAll() {
	for i := 1; i < len(v.net.nodes); i++ {
		if !v.net.nodes[i].dead {
			v.recompute(i)
		}
	}
}
