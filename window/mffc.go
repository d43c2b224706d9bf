package window

import "github.com/logisynth/aig"

// MFFC computes the maximum fanout-free cone of root bounded by leaves: the
// set of nodes that would become dangling if root's last reference
// disappeared, found by cascading a temporary reference count rather than
// mutating the network (spec §4.3, "MFFC via reference-count cascading").
func MFFC(net *aig.Network, root int, leaves []int) []int {
	leafSet := make(map[int]bool, len(leaves))
	for _, l := range leaves {
		leafSet[l] = true
	}

	// internalRefs[n] counts, among nodes strictly inside the leaf-bounded
	// cone of root, how many reference n as a fanin.
	internalRefs := make(map[int]int)
	visited := make(map[int]bool)
	var collect func(n int)
	collect = func(n int) {
		if n == root {
			visited[n] = true
		}
		if leafSet[n] || net.IsPI(n) || n == 0 {
			return
		}
		if visited[n] && n != root {
			return
		}
		visited[n] = true
		for _, f := range net.Fanins(n) {
			internalRefs[f.Index()]++
			collect(f.Index())
		}
	}
	collect(root)

	var mffc []int
	inMFFC := make(map[int]bool)
	var deref func(n int)
	deref = func(n int) {
		if leafSet[n] || net.IsPI(n) || n == 0 || inMFFC[n] {
			return
		}
		// n belongs to the MFFC only once every live reference to it lies
		// inside the cone already collected (or it is the root itself).
		if n != root && net.FanoutSize(n) != internalRefs[n] {
			return
		}
		inMFFC[n] = true
		mffc = append(mffc, n)
		for _, f := range net.Fanins(n) {
			deref(f.Index())
		}
	}
	deref(root)

	return mffc
}
