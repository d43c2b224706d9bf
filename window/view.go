package window

import (
	"sort"

	"github.com/logisynth/aig"
)

// View is a self-contained sub-network extracted from a window around one or
// more roots: cut leaves become fresh primary inputs, in the same order as
// the originating Cut.Leaves, and each requested root becomes a primary
// output. It lets package resyn and package sat operate on a small Network
// instead of the full circuit (spec §4.3, "window view").
type View struct {
	Net      *aig.Network
	LeafRefs []aig.Ref
	RootRefs []aig.Ref
}

// Build materializes a View in src's flavor for cut, replicating every node
// in nodes (typically the MFFC plus collected divisors) and finishing with
// one PO per entry in roots.
func Build(src *aig.Network, cut Cut, nodes []int, roots []int) View {
	win := aig.New(src.Flavor)

	mapped := make(map[int]aig.Ref, len(cut.Leaves)+len(nodes))
	leafRefs := make([]aig.Ref, len(cut.Leaves))
	for i, l := range cut.Leaves {
		r := win.CreatePI()
		mapped[l] = r
		leafRefs[i] = r
	}
	mapped[0] = win.GetConstant(false)

	order := append([]int(nil), nodes...)
	sort.Ints(order)

	var resolve func(n int) aig.Ref
	resolve = func(n int) aig.Ref {
		if r, ok := mapped[n]; ok {
			return r
		}
		// A reference escaped the selected node set (an under-sized window);
		// treat it as an opaque extra input rather than failing the build.
		r := win.CreatePI()
		mapped[n] = r
		return r
	}

	for _, n := range order {
		if _, ok := mapped[n]; ok {
			continue
		}
		fanins := src.Fanins(n)
		resolved := make([]aig.Ref, len(fanins))
		for i, f := range fanins {
			base := resolve(f.Index())
			resolved[i] = base.WithPolarity(base.IsComplemented() != f.IsComplemented())
		}

		var out aig.Ref
		switch src.Kind(n) {
		case aig.GateKindAnd:
			out = win.CreateAnd(resolved[0], resolved[1])
		case aig.GateKindXor:
			out = win.CreateXor(resolved[0], resolved[1])
		case aig.GateKindMaj:
			out = win.CreateMaj(resolved[0], resolved[1], resolved[2])
		case aig.GateKindXor3:
			out = win.CreateXor3(resolved[0], resolved[1], resolved[2])
		}
		mapped[n] = out
	}

	rootRefs := make([]aig.Ref, len(roots))
	for i, r := range roots {
		ref := resolve(r)
		win.CreatePO(ref)
		rootRefs[i] = ref
	}

	return View{Net: win, LeafRefs: leafRefs, RootRefs: rootRefs}
}
