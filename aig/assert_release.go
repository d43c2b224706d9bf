//go:build !debug

package aig

// assertAcyclic is a no-op outside of -tags debug builds; see
// assert_debug.go.
func (net *Network) assertAcyclic() {}
