//go:build debug

package aig

// assertAcyclic panics if the arena's acyclicity invariant has broken,
// compiled in only under -tags debug: spec §9 is explicit that a cyclic
// substitution is a pathological condition worth catching the moment it
// happens rather than leaving `filter_cyclic_substitutions` optional, but
// walking every node after every Substitute is too expensive for release
// builds.
func (net *Network) assertAcyclic() {
	if err := net.checkAcyclic(); err != nil {
		panic(err)
	}
}
