package resyn

// MIGEngine searches majority-of-three combinations of divisors, the
// natural replacement shape for MIG-flavored networks. Grounded on
// original_source's mig_resyn.hpp top-down majority decomposition, simplified
// to direct enumeration over the (already small) divisor and window pool.
type MIGEngine struct{}

// NewMIGTopDown builds the majority-search resynthesis engine. Experimental:
// its exhaustive triple enumeration has no pruning beyond unateness ranking,
// so it should only be pointed at small divisor pools.
func NewMIGTopDown() Engine { return MIGEngine{} }

func (MIGEngine) Resynthesize(target TT, divisors []TT, maxGates int) (*Expr, bool) {
	if expr, ok := resub0(target, divisors); ok {
		return expr, true
	}
	if maxGates < 1 {
		return nil, false
	}

	order := rankByUnateness(target, divisors)
	n := len(order)
	for ai := 0; ai < n; ai++ {
		i := order[ai]
		for bi := ai + 1; bi < n; bi++ {
			j := order[bi]
			for ci := bi + 1; ci < n; ci++ {
				k := order[ci]
				for _, pa := range []bool{false, true} {
					for _, pb := range []bool{false, true} {
						for _, pc := range []bool{false, true} {
							a := applyComp(divisors[i], pa)
							b := applyComp(divisors[j], pb)
							c := applyComp(divisors[k], pc)
							maj := Maj(a, b, c)
							if EqualUnderCare(target, maj) {
								return gate(ExprMaj, false, leaf(i, pa), leaf(j, pb), leaf(k, pc)), true
							}
							if EqualUnderCare(target, maj.Not()) {
								return gate(ExprMaj, true, leaf(i, pa), leaf(j, pb), leaf(k, pc)), true
							}
						}
					}
				}
			}
		}
	}
	return nil, false
}
