package sat

import (
	"testing"

	"github.com/logisynth/aig"
)

func TestCheckEquivalenceDetectsIdenticalGates(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()
	g1 := net.CreateAnd(a, b)
	g2 := net.CreateDontTouch(aig.GateKindAnd, a, b)
	net.CreatePO(g1)
	net.CreatePO(g2)

	v := NewValidator(net)
	if got := v.CheckEquivalence(g1, g2, nil); got != UNSAT {
		t.Fatalf("two AND gates over the same fanins should be UNSAT (equivalent), got %v", got)
	}
}

func TestCheckEquivalenceDetectsDifference(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()
	and := net.CreateAnd(a, b)
	xor := net.CreateXor(a, b)
	net.CreatePO(and)
	net.CreatePO(xor)

	v := NewValidator(net)
	if got := v.CheckEquivalence(and, xor, nil); got != SAT {
		t.Fatalf("AND and XOR of the same fanins should be SAT (distinguishable), got %v", got)
	}
}

func TestCounterExampleIsDistinguishing(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()
	and := net.CreateAnd(a, b)
	xor := net.CreateXor(a, b)
	net.CreatePO(and)
	net.CreatePO(xor)

	v := NewValidator(net)
	if got := v.CheckEquivalence(and, xor, nil); got != SAT {
		t.Fatalf("expected SAT, got %v", got)
	}
	ce := v.CounterExample()
	if len(ce) != 2 {
		t.Fatalf("expected 2 PI bits, got %d", len(ce))
	}
	// AND(a,b) != XOR(a,b) whenever a == b == true; any other assignment
	// where they differ is also acceptable, so just check the two gates
	// actually differ under this assignment.
	andVal := ce[0] && ce[1]
	xorVal := ce[0] != ce[1]
	if andVal == xorVal {
		t.Fatalf("counterexample %v does not distinguish AND from XOR", ce)
	}
}

func TestValidatorCanBeReusedAcrossChecks(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()
	c := net.CreatePI()
	and1 := net.CreateAnd(a, b)
	and2 := net.CreateAnd(a, c)
	net.CreatePO(and1)
	net.CreatePO(and2)

	v := NewValidator(net)
	if got := v.CheckEquivalence(and1, and1, nil); got != UNSAT {
		t.Fatalf("a gate is always equivalent to itself, got %v", got)
	}
	if got := v.CheckEquivalence(and1, and2, nil); got != SAT {
		t.Fatalf("AND(a,b) vs AND(a,c) should be distinguishable, got %v", got)
	}
}
