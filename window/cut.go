// Package window implements the cut/window builder: reconvergence-driven
// cuts, MFFC computation, divisor collection, and window views used by the
// resubstitution engine to scope its search around one gate at a time
// (spec §4.3).
package window

import (
	"sort"

	"github.com/logisynth/aig"
)

// Cut is a reconvergence-driven leaf set for a root node: the node's
// combinational cone expressed purely as a function of Leaves.
type Cut struct {
	Root   int
	Leaves []int
}

// Builder is Params under the name original_source's window_utils.hpp uses
// for the same configuration struct.
type Builder = Params

// Params bounds the window builder's growth.
type Params struct {
	// MaxPIs caps how many of the cut's leaves may themselves be primary
	// inputs; growth that would pull in one more PI than this stops early
	// even if MaxLeaves has room left, grounded on original_source's
	// window_utils.hpp split between a leaf cap and a PI cap (a cut with
	// few internal leaves but a PI fan-in explosion is just as expensive
	// to resynthesize over). Zero means no separate PI cap.
	MaxPIs      int
	MaxLeaves   int
	MaxDivisors int

	// FanoutLimit caps a node's fanout count (gate and primary-output
	// references together) before GrowCut
	// treats it as a bulky hub and stops expanding through it, the same
	// way a primary input stops expansion: pulling a high-fanout node's
	// full fanin cone into every nearby window would blow up cut and
	// divisor set sizes for little benefit. Zero means no limit.
	FanoutLimit int
	// SkipFanoutLimitForDivisors disables FanoutLimit when deciding
	// whether a leaf can expand further (the limit still applies to
	// picking which nodes are examined as roots, enforced by the driver,
	// not by GrowCut).
	SkipFanoutLimitForDivisors bool
	// SkipFanoutLimitForRoots is consumed by the resubstitution driver,
	// not by GrowCut itself: it decides whether a bulky-hub node is even
	// offered to GrowCut as a root.
	SkipFanoutLimitForRoots bool
}

// DefaultParams mirrors the cut/divisor sizes original_source's
// utils/reconv_cut.hpp and window_utils.hpp default to.
func DefaultParams() Params {
	return Params{MaxLeaves: 8, MaxDivisors: 150, FanoutLimit: 1000}
}

// isBulkyHub reports whether n's fanout count exceeds what params.FanoutLimit
// allows growth through, per the "skip bulky hubs" driver option.
func isBulkyHub(net *aig.Network, n int, params Params) bool {
	if params.SkipFanoutLimitForDivisors || params.FanoutLimit == 0 {
		return false
	}
	return net.FanoutSize(n) > params.FanoutLimit
}

// isBoxBoundary reports whether n is a boundary node (input or output) of a
// black box: windowing must treat it as an opaque leaf and never look inside
// it (spec §4.1's box extension).
func isBoxBoundary(net *aig.Network, n int) bool {
	b := net.BoxOf(n)
	return b != nil && b.Kind == aig.BlackBox
}

func countPIs(net *aig.Network, leaves map[int]bool) int {
	n := 0
	for l := range leaves {
		if net.IsPI(l) {
			n++
		}
	}
	return n
}

// GrowCut builds a reconvergence-driven cut around root: starting from its
// direct fanins, it repeatedly expands the highest-level non-PI,
// non-box-boundary, non-bulky-hub leaf into its own fanins, stopping once
// the leaf set would exceed params.MaxLeaves or no leaf can be expanded
// further.
func GrowCut(net *aig.Network, lv *aig.LevelView, root int, params Params) Cut {
	leafSet := make(map[int]bool)
	for _, f := range net.Fanins(root) {
		leafSet[f.Index()] = true
	}

	for len(leafSet) < params.MaxLeaves {
		expand := -1
		expandLevel := -1
		for l := range leafSet {
			if l == 0 || net.IsPI(l) || isBoxBoundary(net, l) || isBulkyHub(net, l, params) {
				continue
			}
			if lv.Level(l) > expandLevel {
				expandLevel = lv.Level(l)
				expand = l
			}
		}
		if expand == -1 {
			break
		}

		grown := make(map[int]bool, len(leafSet))
		for k := range leafSet {
			grown[k] = true
		}
		delete(grown, expand)
		for _, f := range net.Fanins(expand) {
			grown[f.Index()] = true
		}
		if len(grown) > params.MaxLeaves {
			break
		}
		if params.MaxPIs > 0 && countPIs(net, grown) > params.MaxPIs {
			break
		}
		leafSet = grown
	}

	leaves := make([]int, 0, len(leafSet))
	for l := range leafSet {
		leaves = append(leaves, l)
	}
	sort.Ints(leaves)
	return Cut{Root: root, Leaves: leaves}
}
