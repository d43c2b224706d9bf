package window

import (
	"testing"

	"github.com/logisynth/aig"
)

// buildAdder wires a one-bit full adder: sum = a^b^cin, cout = maj-like
// carry, grounded the same shape spec §8's full-adder scenario uses.
func buildAdder(net *aig.Network) (a, b, cin, sum, cout aig.Ref) {
	a = net.CreatePI()
	b = net.CreatePI()
	cin = net.CreatePI()

	abx := net.CreateXor(a, b)
	sum = net.CreateXor(abx, cin)

	and1 := net.CreateAnd(a, b)
	and2 := net.CreateAnd(abx, cin)
	cout = net.CreateXor(and1, and2.Not()).Not()
	return
}

func TestGrowCutStaysWithinBudget(t *testing.T) {
	net := aig.New(aig.FlavorXAG)
	lv := aig.NewLevelView(net)
	_, _, _, sum, _ := buildAdder(net)
	net.CreatePO(sum)

	cut := GrowCut(net, lv, sum.Index(), Params{MaxLeaves: 3, MaxDivisors: 50})
	if len(cut.Leaves) > 3 {
		t.Fatalf("cut has %d leaves, want <= 3", len(cut.Leaves))
	}
	if len(cut.Leaves) == 0 {
		t.Fatalf("cut has no leaves")
	}
}

func TestMFFCIncludesOnlyExclusiveNodes(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	a := net.CreatePI()
	b := net.CreatePI()
	c := net.CreatePI()

	shared := net.CreateAnd(a, b)
	root := net.CreateAnd(shared, c)
	net.CreatePO(shared) // shared has an extra reference outside root's cone
	net.CreatePO(root)

	mffc := MFFC(net, root.Index(), []int{a.Index(), b.Index(), c.Index()})
	for _, n := range mffc {
		if n == shared.Index() {
			t.Fatalf("MFFC must not include shared, which has an external reference")
		}
	}
	found := false
	for _, n := range mffc {
		if n == root.Index() {
			found = true
		}
	}
	if !found {
		t.Fatalf("MFFC must include the root itself")
	}
}

func TestDivisorsExcludesMFFCAndRoot(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	lv := aig.NewLevelView(net)
	a := net.CreatePI()
	b := net.CreatePI()
	c := net.CreatePI()

	g1 := net.CreateAnd(a, b)
	root := net.CreateAnd(g1, c)
	net.CreatePO(root)

	cut := GrowCut(net, lv, root.Index(), DefaultParams())
	mffc := MFFC(net, root.Index(), cut.Leaves)
	divs := Divisors(net, cut, mffc, 20)

	for _, d := range divs {
		if d == root.Index() {
			t.Fatalf("divisors must not include the root")
		}
		for _, m := range mffc {
			if d == m {
				t.Fatalf("divisors must not include an MFFC node %d", m)
			}
		}
	}
}

func TestGrowCutStopsAtBoxBoundary(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	lv := aig.NewLevelView(net)
	a := net.CreatePI()
	b := net.CreatePI()
	c := net.CreatePI()

	inner := net.CreateAnd(a, b) // would normally be expanded into a, b
	net.AddBox(&aig.Box{Kind: aig.BlackBox, Name: "opaque", Outputs: []aig.Ref{inner}})
	root := net.CreateAnd(inner, c)

	cut := GrowCut(net, lv, root.Index(), Params{MaxLeaves: 8, MaxDivisors: 50})
	foundInner, foundA := false, false
	for _, l := range cut.Leaves {
		if l == inner.Index() {
			foundInner = true
		}
		if l == a.Index() {
			foundA = true
		}
	}
	if !foundInner {
		t.Fatalf("cut must stop at the black-box output, got leaves %v", cut.Leaves)
	}
	if foundA {
		t.Fatalf("cut must not look inside the black box, got leaves %v", cut.Leaves)
	}
}

func TestGrowCutRespectsFanoutLimit(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	lv := aig.NewLevelView(net)
	a := net.CreatePI()
	b := net.CreatePI()
	c := net.CreatePI()

	hub := net.CreateAnd(a, b)
	net.CreatePO(hub)
	net.CreatePO(hub) // pad hub's fanout past the limit below
	root := net.CreateAnd(hub, c)

	cut := GrowCut(net, lv, root.Index(), Params{MaxLeaves: 8, MaxDivisors: 50, FanoutLimit: 1})
	found := false
	for _, l := range cut.Leaves {
		if l == hub.Index() {
			found = true
		}
	}
	if !found {
		t.Fatalf("cut must stop at the bulky hub rather than expand through it, got leaves %v", cut.Leaves)
	}
}

func TestGrowCutRespectsMaxPIs(t *testing.T) {
	net := aig.New(aig.FlavorAIG)
	lv := aig.NewLevelView(net)
	a := net.CreatePI()
	b := net.CreatePI()
	c := net.CreatePI()
	d := net.CreatePI()

	ab := net.CreateAnd(a, b)
	cd := net.CreateAnd(c, d)
	root := net.CreateAnd(ab, cd)

	cut := GrowCut(net, lv, root.Index(), Params{MaxLeaves: 8, MaxDivisors: 50, MaxPIs: 2})
	pis := 0
	for _, l := range cut.Leaves {
		if net.IsPI(l) {
			pis++
		}
	}
	if pis > 2 {
		t.Fatalf("cut pulled in %d PI leaves, want <= 2 (MaxPIs)", pis)
	}
}

func TestBuildViewReproducesFunction(t *testing.T) {
	net := aig.New(aig.FlavorXAG)
	lv := aig.NewLevelView(net)
	a, b, cin, sum, _ := buildAdder(net)
	net.CreatePO(sum)

	cut := GrowCut(net, lv, sum.Index(), Params{MaxLeaves: 3, MaxDivisors: 50})
	mffc := MFFC(net, sum.Index(), cut.Leaves)
	divs := Divisors(net, cut, mffc, 50)

	nodes := append(append([]int(nil), mffc...), divs...)
	view := Build(net, cut, nodes, []int{sum.Index()})

	if len(view.RootRefs) != 1 {
		t.Fatalf("expected exactly one root ref")
	}
	if len(view.LeafRefs) != len(cut.Leaves) {
		t.Fatalf("leaf ref count mismatch: %d vs %d", len(view.LeafRefs), len(cut.Leaves))
	}
	_ = a
	_ = b
	_ = cin
}
