package resyn

import (
	"testing"

	"github.com/logisynth/aig"
)

func pat(bits ...bool) []uint64 {
	var word uint64
	for i, b := range bits {
		if b {
			word |= 1 << uint(i)
		}
	}
	return []uint64{word}
}

func TestResub0FindsDirectMatch(t *testing.T) {
	target := NewTT(pat(false, true, true, false), 4)
	divisors := []TT{
		NewTT(pat(true, true, false, false), 4),
		NewTT(pat(false, true, true, false), 4),
	}

	expr, ok := (XAGEngine{}).Resynthesize(target, divisors, 0)
	if !ok {
		t.Fatalf("expected a 0-resub match")
	}
	if NumGates(expr) != 0 {
		t.Fatalf("0-resub candidate should have 0 gates, got %d", NumGates(expr))
	}
	if !EqualUnderCare(target, Eval(expr, divisors)) {
		t.Fatalf("candidate does not compute the target")
	}
}

func TestResub1FindsAndCombination(t *testing.T) {
	a := NewTT(pat(false, false, true, true), 4)
	b := NewTT(pat(false, true, false, true), 4)
	target := And(a, b) // a AND b, pattern 3 only

	expr, ok := (XAGEngine{}).Resynthesize(target, []TT{a, b}, 2)
	if !ok {
		t.Fatalf("expected a 1-resub match")
	}
	if !EqualUnderCare(target, Eval(expr, []TT{a, b})) {
		t.Fatalf("candidate does not compute the target")
	}
}

func TestResub1RespectsCareMask(t *testing.T) {
	a := NewTT(pat(false, false, true, true), 4)
	b := NewTT(pat(false, true, false, true), 4)
	// Target matches AND(a,b) everywhere except pattern 0, which is don't-care.
	careMask := pat(false, true, true, true)
	targetBits := pat(true, false, false, true)
	target := NewTTWithCare(targetBits, careMask, 4)

	expr, ok := (XAGEngine{}).Resynthesize(target, []TT{a, b}, 2)
	if !ok {
		t.Fatalf("expected a resub match exploiting the don't-care")
	}
	if !EqualUnderCare(target, Eval(expr, []TT{a, b})) {
		t.Fatalf("candidate does not respect the care mask")
	}
}

func TestXAGEngineFindsConstantTarget(t *testing.T) {
	target := NewTT(pat(false, false, false, false), 4)
	// Neither divisor equals target or its complement, so only the
	// constant check (not resub0/1/2) can recognize this target.
	divisors := []TT{
		NewTT(pat(true, false, true, false), 4),
		NewTT(pat(false, true, true, false), 4),
	}

	expr, ok := (XAGEngine{}).Resynthesize(target, divisors, 2)
	if !ok {
		t.Fatalf("expected the constant check to recognize an all-0 target")
	}
	if expr.Kind != ExprConst || expr.Comp {
		t.Fatalf("expected an uncomplemented ExprConst, got kind %v comp %v", expr.Kind, expr.Comp)
	}
	if NumGates(expr) != 0 {
		t.Fatalf("constant candidate should have 0 gates, got %d", NumGates(expr))
	}
	if !EqualUnderCare(target, Eval(expr, divisors)) {
		t.Fatalf("constant candidate does not compute the target")
	}
}

func TestXAGEngineFindsConstantTargetUnderCareMask(t *testing.T) {
	// Cared bits are all 1 except the don't-care pattern, which disagrees;
	// the target is constant-1 once the care mask is applied.
	careMask := pat(true, true, false, true)
	targetBits := pat(true, true, false, true)
	target := NewTTWithCare(targetBits, careMask, 4)
	divisors := []TT{
		NewTT(pat(true, false, true, false), 4),
		NewTT(pat(false, true, true, false), 4),
	}

	expr, ok := (XAGEngine{}).Resynthesize(target, divisors, 2)
	if !ok {
		t.Fatalf("expected the constant check to recognize a target constant under its care mask")
	}
	if expr.Kind != ExprConst || !expr.Comp {
		t.Fatalf("expected a complemented ExprConst, got kind %v comp %v", expr.Kind, expr.Comp)
	}
}

func TestMIGEngineFindsMajority(t *testing.T) {
	a := NewTT(pat(true, true, false, false), 4)
	b := NewTT(pat(true, false, true, false), 4)
	c := NewTT(pat(false, true, true, false), 4)
	target := Maj(a, b, c)

	expr, ok := (MIGEngine{}).Resynthesize(target, []TT{a, b, c}, 1)
	if !ok {
		t.Fatalf("expected a majority match")
	}
	if expr.Kind != ExprMaj {
		t.Fatalf("expected an ExprMaj candidate, got kind %v", expr.Kind)
	}
}

func TestMUXEngineFindsITE(t *testing.T) {
	cond := NewTT(pat(true, true, false, false), 4)
	then := NewTT(pat(true, false, true, false), 4)
	els := NewTT(pat(false, true, false, true), 4)
	target := Mux(cond, then, els)

	expr, ok := (MUXEngine{}).Resynthesize(target, []TT{cond, then, els}, 1)
	if !ok {
		t.Fatalf("expected a MUX match")
	}
	if !EqualUnderCare(target, Eval(expr, []TT{cond, then, els})) {
		t.Fatalf("candidate does not compute the target")
	}
}

func TestMaterializeProducesEquivalentNetwork(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()

	expr := gate(ExprAnd, false, leaf(0, false), leaf(1, true))
	out := Materialize(net, expr, []aig.Ref{a, b})

	if net.Kind(out.Index()) != aig.GateKindAnd {
		t.Fatalf("expected an AND gate, got %v", net.Kind(out.Index()))
	}
	if out.IsComplemented() {
		t.Fatalf("expected an uncomplemented AND output")
	}
	if f := net.Fanins(out.Index()); f[0] != a || f[1] != b.Not() {
		t.Fatalf("expected AND(a, !b), got fanins %v", f)
	}
}

func TestEngineConstructorsReturnUsableEngines(t *testing.T) {
	a := NewTT(pat(true, true, false, false), 4)
	b := NewTT(pat(true, false, true, false), 4)

	var engines = []Engine{NewXAGDecompose(), NewMIGTopDown(), NewMUX()}
	for _, e := range engines {
		if _, ok := e.Resynthesize(a, []TT{a, b}, 0); !ok {
			t.Fatalf("%T: expected a 0-resub match on a divisor equal to the target", e)
		}
	}
}

func TestCareCountCountsDontCareBits(t *testing.T) {
	fullyCared := NewTT(pat(true, false, true, false), 4)
	if got := fullyCared.CareCount(); got != 4 {
		t.Fatalf("fully-cared table: got CareCount=%d, want 4", got)
	}

	careMask := pat(true, true, false, false)
	partial := NewTTWithCare(pat(true, false, false, false), careMask, 4)
	if got := partial.CareCount(); got != 2 {
		t.Fatalf("partial care mask: got CareCount=%d, want 2", got)
	}
}

func TestClassifyDetectsUnate(t *testing.T) {
	target := NewTT(pat(false, true, true, true), 4)
	posUnate := NewTT(pat(false, true, true, true), 4)
	if got := Classify(target, posUnate); got != PositiveUnate {
		t.Fatalf("expected PositiveUnate, got %v", got)
	}

	negUnate := NewTT(pat(true, false, false, false), 4)
	if got := Classify(target, negUnate); got != NegativeUnate {
		t.Fatalf("expected NegativeUnate, got %v", got)
	}
}
