package resyn

// MUXEngine searches if-then-else combinations of three divisors, useful
// when the target function is naturally a multiplexer over some condition
// divisor. Grounded on original_source's algorithms/mux_resyn.hpp shape,
// restricted to the divisor pool already collected for the window.
type MUXEngine struct{}

// NewMUX builds the if-then-else search engine. Experimental: the
// condition/then/else triple search is a greedy O(n^3) scan with no
// cost model beyond "first match wins", mirroring the original's own
// TODO on picking a better condition divisor.
func NewMUX() Engine { return MUXEngine{} }

func (MUXEngine) Resynthesize(target TT, divisors []TT, maxGates int) (*Expr, bool) {
	if expr, ok := resub0(target, divisors); ok {
		return expr, true
	}
	if maxGates < 1 {
		return nil, false
	}

	n := len(divisors)
	for ci := 0; ci < n; ci++ {
		for ti := 0; ti < n; ti++ {
			if ti == ci {
				continue
			}
			for ei := 0; ei < n; ei++ {
				if ei == ci || ei == ti {
					continue
				}
				for _, cc := range []bool{false, true} {
					cond := applyComp(divisors[ci], cc)
					mux := Mux(cond, divisors[ti], divisors[ei])
					if EqualUnderCare(target, mux) {
						return gate(ExprMux, false, leaf(ci, cc), leaf(ti, false), leaf(ei, false)), true
					}
					if EqualUnderCare(target, mux.Not()) {
						return gate(ExprMux, true, leaf(ci, cc), leaf(ti, false), leaf(ei, false)), true
					}
				}
			}
		}
	}
	return nil, false
}
