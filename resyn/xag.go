package resyn

// XAGEngine is the default resynthesis engine: it searches AND/XOR
// combinations of divisors in increasing gate count (0-resub, 1-resub,
// 2-resub), trying divisors most likely to cover the target first per their
// Classify result. Grounded on original_source's
// algorithms/resubstitution.hpp and xag_resyn_engines.hpp decomposition
// strategy.
type XAGEngine struct{}

// NewXAGDecompose builds the default resynthesis engine.
func NewXAGDecompose() Engine { return XAGEngine{} }

func (XAGEngine) Resynthesize(target TT, divisors []TT, maxGates int) (*Expr, bool) {
	if value, ok := ConstantValue(target); ok {
		return constExpr(value), true
	}
	if expr, ok := resub0(target, divisors); ok {
		return expr, true
	}
	if maxGates < 1 {
		return nil, false
	}
	if expr, ok := resub1XAG(target, divisors); ok {
		return expr, true
	}
	if maxGates < 2 {
		return nil, false
	}
	if expr, ok := resub2XAG(target, divisors); ok {
		return expr, true
	}
	return nil, false
}

// resub0 tries every divisor, in both polarities, as a direct replacement.
func resub0(target TT, divisors []TT) (*Expr, bool) {
	for i, d := range divisors {
		if EqualUnderCare(target, d) {
			return leaf(i, false), true
		}
		if EqualUnderCare(target, d.Not()) {
			return leaf(i, true), true
		}
	}
	return nil, false
}

// resub1XAG tries a single AND or XOR of two (possibly complemented)
// divisors, ordering candidates by unateness so a covering pair is usually
// found in the first few tries.
func resub1XAG(target TT, divisors []TT) (*Expr, bool) {
	order := rankByUnateness(target, divisors)

	for ai := 0; ai < len(order); ai++ {
		i := order[ai]
		for bi := ai + 1; bi < len(order); bi++ {
			j := order[bi]
			for _, ci := range []bool{false, true} {
				for _, cj := range []bool{false, true} {
					a := applyComp(divisors[i], ci)
					b := applyComp(divisors[j], cj)

					and := And(a, b)
					if EqualUnderCare(target, and) {
						return gate(ExprAnd, false, leaf(i, ci), leaf(j, cj)), true
					}
					if EqualUnderCare(target, and.Not()) {
						return gate(ExprAnd, true, leaf(i, ci), leaf(j, cj)), true
					}

					xor := Xor(a, b)
					if EqualUnderCare(target, xor) {
						return gate(ExprXor, false, leaf(i, ci), leaf(j, cj)), true
					}
				}
			}
		}
	}
	return nil, false
}

// resub2XAG extends resub1XAG by one more gate: AND/XOR of a 1-resub
// candidate (built from two divisors) with a third divisor.
func resub2XAG(target TT, divisors []TT) (*Expr, bool) {
	order := rankByUnateness(target, divisors)
	n := len(order)
	for ai := 0; ai < n; ai++ {
		i := order[ai]
		for bi := ai + 1; bi < n; bi++ {
			j := order[bi]
			for _, ci := range []bool{false, true} {
				for _, cj := range []bool{false, true} {
					a := applyComp(divisors[i], ci)
					b := applyComp(divisors[j], cj)
					for _, innerOp := range []ExprKind{ExprAnd, ExprXor} {
						var inner TT
						if innerOp == ExprAnd {
							inner = And(a, b)
						} else {
							inner = Xor(a, b)
						}
						innerExpr := gate(innerOp, false, leaf(i, ci), leaf(j, cj))

						for ki := 0; ki < n; ki++ {
							k := order[ki]
							if k == i || k == j {
								continue
							}
							for _, ck := range []bool{false, true} {
								c := applyComp(divisors[k], ck)

								and := And(inner, c)
								if EqualUnderCare(target, and) {
									return gate(ExprAnd, false, innerExpr, leaf(k, ck)), true
								}
								if EqualUnderCare(target, and.Not()) {
									return gate(ExprAnd, true, innerExpr, leaf(k, ck)), true
								}

								xor := Xor(inner, c)
								if EqualUnderCare(target, xor) {
									return gate(ExprXor, false, innerExpr, leaf(k, ck)), true
								}
							}
						}
					}
				}
			}
		}
	}
	return nil, false
}

func applyComp(t TT, comp bool) TT {
	if comp {
		return t.Not()
	}
	return t
}

// rankByUnateness returns divisor indices ordered so unate (and therefore
// more likely useful) divisors are tried before binate ones.
func rankByUnateness(target TT, divisors []TT) []int {
	order := make([]int, len(divisors))
	for i := range order {
		order[i] = i
	}
	weight := func(i int) int {
		switch Classify(target, divisors[i]) {
		case PositiveUnate, NegativeUnate:
			return 0
		case Constant:
			return 2
		default:
			return 1
		}
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && weight(order[j]) < weight(order[j-1]); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}
