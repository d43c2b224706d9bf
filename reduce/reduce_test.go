package reduce

import (
	"testing"

	"github.com/logisynth/aig"
	"github.com/logisynth/aig/sat"
	"github.com/logisynth/aig/simulate"
)

func TestPassMergesStructuralDuplicate(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()
	g1 := net.CreateAnd(a, b)
	g2 := net.CreateDontTouch(aig.GateKindAnd, a, b)
	net.ClearDontTouch(g2.Index())
	net.CreatePO(g1)
	net.CreatePO(g2)

	sim := simulate.New(net)
	sim.Seed(8, nil)
	val := sat.NewValidator(net)

	stats := Pass(net, sim, val)
	if stats.Merged != 1 {
		t.Fatalf("expected 1 merge, got %d (counterexamples=%d)", stats.Merged, stats.Counterexamples)
	}
	if err := net.CheckInvariants(); err != nil {
		t.Fatalf("invariants broken after reduction: %v", err)
	}
}

// TestPassCollapsesConstantGateToRealConstant implements spec.md §8's
// "AND(pi_i,¬pi_i) has all POs zero after reduction" boundary behavior.
func TestPassCollapsesConstantGateToRealConstant(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	net.CreatePI()
	// CreateDontTouch bypasses the creation-time trivial reduction, so g is
	// a real gate computing constant-0 rather than already being net.GetConstant(false).
	g := net.CreateDontTouch(aig.GateKindAnd, a, a.Not())
	net.ClearDontTouch(g.Index())
	net.CreatePO(g)

	sim := simulate.New(net)
	sim.Seed(8, nil)
	val := sat.NewValidator(net)

	stats := Pass(net, sim, val)
	if stats.Merged != 1 {
		t.Fatalf("expected 1 merge into the real constant, got %d (counterexamples=%d)", stats.Merged, stats.Counterexamples)
	}
	if net.NumGates() != 0 {
		t.Fatalf("expected 0 live gates after reduction, got %d", net.NumGates())
	}
	if net.POs()[0] != net.GetConstant(false) {
		t.Fatalf("PO should point at the real constant-false node, got %v", net.POs()[0])
	}
}

// TestPassCollapsesAllConstantPOsToZeroGates implements spec.md §8's "a
// network with all POs constant collapses to zero gates" boundary behavior.
func TestPassCollapsesAllConstantPOsToZeroGates(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()
	g1 := net.CreateDontTouch(aig.GateKindAnd, a, a.Not())
	net.ClearDontTouch(g1.Index())
	g2 := net.CreateDontTouch(aig.GateKindAnd, b, b.Not())
	net.ClearDontTouch(g2.Index())
	net.CreatePO(g1)
	net.CreatePO(g2)

	sim := simulate.New(net)
	sim.Seed(8, nil)
	val := sat.NewValidator(net)

	stats := Pass(net, sim, val)
	if stats.Merged != 2 {
		t.Fatalf("expected both constant gates to merge, got %d (counterexamples=%d)", stats.Merged, stats.Counterexamples)
	}
	if net.NumGates() != 0 {
		t.Fatalf("expected an all-constant network to collapse to 0 gates, got %d", net.NumGates())
	}
	for _, po := range net.POs() {
		if po != net.GetConstant(false) {
			t.Fatalf("expected every PO to point at constant-false, got %v", po)
		}
	}
}

func TestPassLeavesDistinctFunctionsAlone(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()
	and := net.CreateAnd(a, b)
	xor := net.CreateXor(a, b)
	net.CreatePO(and)
	net.CreatePO(xor)

	sim := simulate.New(net)
	sim.Seed(8, nil)
	val := sat.NewValidator(net)

	stats := Pass(net, sim, val)
	if stats.Merged != 0 {
		t.Fatalf("expected no merges between AND and XOR, got %d", stats.Merged)
	}
	if net.NumGates() != 2 {
		t.Fatalf("expected both gates to survive, got %d", net.NumGates())
	}
}
