package sat

import (
	"github.com/go-air/gini/z"

	"github.com/logisynth/aig"
)

// Outcome is the result of one equivalence check.
type Outcome int

const (
	UNSAT Outcome = iota
	SAT
	TIMEOUT
)

func (o Outcome) String() string {
	switch o {
	case SAT:
		return "sat"
	case UNSAT:
		return "unsat"
	default:
		return "timeout"
	}
}

// Validator wraps one CNF encoding and its solver, using Test/Untest
// bookmarks to scope each candidate's miter clauses so the encoded circuit
// itself is reused across an entire resubstitution pass (spec §4.5,
// "incremental SAT validation").
type Validator struct {
	cnf *CNF
	pis []aig.Ref
}

// NewValidator builds a Validator over net, remembering net's primary inputs
// so CounterExample can read back a falsifying pattern in PI order.
func NewValidator(net *aig.Network) *Validator {
	v := &Validator{cnf: New(net), pis: net.PIs()}
	for _, pi := range v.pis {
		v.cnf.LitOf(pi)
	}
	return v
}

// CNF exposes the underlying encoder, e.g. so callers can pre-encode a
// window view that was built separately from net.
func (v *Validator) CNF() *CNF { return v.cnf }

// CheckEquivalence asks whether old and candidate compute the same function
// everywhere careLits (given in positive form) hold, pushing a solver scope
// for the miter clause and popping it again before returning. SAT means a
// distinguishing pattern exists (the substitution is invalid); UNSAT means
// none exists under the current assumptions (the substitution is valid).
func (v *Validator) CheckEquivalence(old, candidate aig.Ref, careLits []aig.Ref) Outcome {
	oldLit := v.cnf.LitOf(old)
	candLit := v.cnf.LitOf(candidate)
	careAssumptions := make([]z.Lit, len(careLits))
	for i, c := range careLits {
		careAssumptions[i] = v.cnf.LitOf(c)
	}

	// Every permanent node encoding above must happen before Test() opens
	// its scope: clauses added after Test() are rolled back by Untest(),
	// but the litOf cache is not, so encoding inside the scope would leave
	// a cached literal with no backing clauses.
	v.cnf.g.Test(nil)
	defer v.cnf.g.Untest()

	miter := v.cnf.g.Lit()
	tseitinXor(v.cnf.g, miter, oldLit, candLit)

	assumptions := append([]z.Lit{miter}, careAssumptions...)
	v.cnf.g.Assume(assumptions...)

	switch v.cnf.g.Solve() {
	case 1:
		return SAT
	case -1:
		return UNSAT
	default:
		return TIMEOUT
	}
}

// restartFallback rebuilds the CNF encoder (and its solver) from scratch.
// gini's Test/Untest scopes push/pop natively, so CheckEquivalence never
// needs this; it exists because the original algorithm assumed a solver
// backend without scoped assumptions and restarted between every
// validation. Kept for a backend that someday lacks Test/Untest.
func (v *Validator) restartFallback(net *aig.Network) {
	v.cnf = New(net)
	for _, pi := range v.pis {
		v.cnf.LitOf(pi)
	}
}

// CounterExample reads back the last SAT result as a per-PI bit assignment,
// suitable for feeding straight into simulate.Simulator.AddPattern to grow
// the pattern pool with the distinguishing input (spec §4.5, "counter-example
// loop" / §9 design note on pattern growth from failed validations).
func (v *Validator) CounterExample() []bool {
	bits := make([]bool, len(v.pis))
	for i, pi := range v.pis {
		bits[i] = v.cnf.g.Value(v.cnf.LitOf(pi))
	}
	return bits
}
