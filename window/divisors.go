package window

import "github.com/logisynth/aig"

// Divisors collects candidate replacement signals for root: every node
// within the cut-to-root window that is not part of root's MFFC (so it
// remains alive after root is substituted), plus the cut's own leaves, plus
// one "wing" hop through the fanout of those divisors to pick up sibling
// reuse candidates (spec §4.3, "divisor collection with wings").
func Divisors(net *aig.Network, cut Cut, mffc []int, limit int) []int {
	mffcSet := make(map[int]bool, len(mffc))
	for _, n := range mffc {
		mffcSet[n] = true
	}
	leafSet := make(map[int]bool, len(cut.Leaves))
	for _, l := range cut.Leaves {
		leafSet[l] = true
	}

	inWindow := make(map[int]bool)
	var walk func(n int)
	walk = func(n int) {
		if inWindow[n] || leafSet[n] {
			return
		}
		inWindow[n] = true
		for _, f := range net.Fanins(n) {
			walk(f.Index())
		}
	}
	walk(cut.Root)

	var divs []int
	seen := make(map[int]bool)
	add := func(n int) bool {
		if n == cut.Root || mffcSet[n] || seen[n] {
			return len(divs) < limit
		}
		seen[n] = true
		divs = append(divs, n)
		return len(divs) < limit
	}

	for l := range leafSet {
		if !add(l) {
			return divs
		}
	}
	for n := range inWindow {
		if !add(n) {
			return divs
		}
	}

	base := append([]int(nil), divs...)
	for _, d := range base {
		if len(divs) >= limit {
			break
		}
		for _, p := range net.ParentsOf(d) {
			if p == cut.Root || mffcSet[p] || net.IsDontTouch(p) {
				continue
			}
			if !add(p) {
				break
			}
		}
	}

	return divs
}
