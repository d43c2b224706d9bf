package resyn

// ExprKind tags the shape of one node in a resynthesized candidate.
type ExprKind uint8

const (
	ExprDivisor ExprKind = iota
	// ExprConst is the 0-gate constant literal: Comp=false is constant-0,
	// Comp=true is constant-1 (spec §4.4 step 1, the constant check).
	ExprConst
	ExprAnd
	ExprXor
	ExprMaj
	// ExprMux is if-then-else on three children (condition, then, else); it
	// is expanded into AND/XOR/NOT gates by Materialize when a candidate
	// using it is built into a Network.
	ExprMux
)

// Expr is a small expression tree referencing divisors by position; it is
// built into a real Network by Materialize, which package resub calls before
// handing the resulting signal to the SAT validator.
type Expr struct {
	Kind     ExprKind
	Divisor  int // valid when Kind == ExprDivisor: index into the caller's divisor slice
	Comp     bool
	Children []*Expr
}

func leaf(i int, comp bool) *Expr { return &Expr{Kind: ExprDivisor, Divisor: i, Comp: comp} }

func gate(kind ExprKind, comp bool, children ...*Expr) *Expr {
	return &Expr{Kind: kind, Comp: comp, Children: children}
}

// constExpr builds the constant literal expr: value false for constant-0,
// true for constant-1.
func constExpr(value bool) *Expr { return &Expr{Kind: ExprConst, Comp: value} }

// Eval computes expr's truth table over the supplied divisor functions.
func Eval(expr *Expr, divisors []TT) TT {
	var t TT
	switch expr.Kind {
	case ExprDivisor:
		t = divisors[expr.Divisor]
	case ExprConst:
		n := 0
		if len(divisors) > 0 {
			n = divisors[0].n
		}
		t = TT{Bits: make([]uint64, wordsFor(n)), n: n}
	case ExprAnd:
		t = And(Eval(expr.Children[0], divisors), Eval(expr.Children[1], divisors))
	case ExprXor:
		t = Xor(Eval(expr.Children[0], divisors), Eval(expr.Children[1], divisors))
	case ExprMaj:
		t = Maj(Eval(expr.Children[0], divisors), Eval(expr.Children[1], divisors), Eval(expr.Children[2], divisors))
	case ExprMux:
		t = Mux(Eval(expr.Children[0], divisors), Eval(expr.Children[1], divisors), Eval(expr.Children[2], divisors))
	}
	if expr.Comp {
		t = t.Not()
	}
	return t
}

// NumGates counts the internal (non-leaf) nodes of expr, used to rank
// candidates by size and to respect a search's maxGates bound.
func NumGates(expr *Expr) int {
	if expr.Kind == ExprDivisor || expr.Kind == ExprConst {
		return 0
	}
	n := 1
	for _, c := range expr.Children {
		n += NumGates(c)
	}
	return n
}

// Engine searches for a replacement expression computing target (under its
// care mask) out of the given divisors, using at most maxGates internal
// gates. It reports (nil, false) if no candidate is found within budget.
type Engine interface {
	Resynthesize(target TT, divisors []TT, maxGates int) (*Expr, bool)
}
