// Package sat implements the incremental SAT-based validator: it encodes a
// Network's nodes into CNF on demand, reusing one solver instance and its
// scoped assumptions across many equivalence checks (spec §4.5).
package sat

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/logisynth/aig"
)

// CNF incrementally Tseitin-encodes an aig.Network's nodes over a single
// underlying solver, caching each node's literal so repeated queries don't
// re-emit its clauses.
type CNF struct {
	g     *gini.Gini
	litOf map[int]z.Lit
	net   *aig.Network
}

// New creates a CNF encoder backed by a fresh gini solver, with node 0
// (constant-false) already pinned by a unit clause.
func New(net *aig.Network) *CNF {
	g := gini.New()
	c := &CNF{g: g, litOf: make(map[int]z.Lit), net: net}

	falseLit := g.Lit()
	addClause(g, falseLit.Not())
	c.litOf[0] = falseLit
	return c
}

// Solver exposes the underlying gini solver for callers that need direct
// Assume/Solve/Test/Untest access.
func (c *CNF) Solver() *gini.Gini { return c.g }

// LitOf returns the CNF literal for signal ref, encoding (and caching) every
// node in its fanin cone that hasn't been encoded yet.
func (c *CNF) LitOf(ref aig.Ref) z.Lit {
	base := c.encode(ref.Index())
	if ref.IsComplemented() {
		return base.Not()
	}
	return base
}

func (c *CNF) encode(n int) z.Lit {
	if l, ok := c.litOf[n]; ok {
		return l
	}

	kind := c.net.Kind(n)
	if kind == aig.GateKindPI {
		l := c.g.Lit()
		c.litOf[n] = l
		return l
	}

	fanins := c.net.Fanins(n)
	ins := make([]z.Lit, len(fanins))
	for i, f := range fanins {
		base := c.encode(f.Index())
		if f.IsComplemented() {
			ins[i] = base.Not()
		} else {
			ins[i] = base
		}
	}

	out := c.g.Lit()
	switch kind {
	case aig.GateKindAnd:
		tseitinAnd(c.g, out, ins[0], ins[1])
	case aig.GateKindXor:
		tseitinXor(c.g, out, ins[0], ins[1])
	case aig.GateKindMaj:
		ab := c.g.Lit()
		tseitinAnd(c.g, ab, ins[0], ins[1])
		ac := c.g.Lit()
		tseitinAnd(c.g, ac, ins[0], ins[2])
		bc := c.g.Lit()
		tseitinAnd(c.g, bc, ins[1], ins[2])
		abOrAc := c.g.Lit()
		tseitinOr(c.g, abOrAc, ab, ac)
		tseitinOr(c.g, out, abOrAc, bc)
	case aig.GateKindXor3:
		inner := c.g.Lit()
		tseitinXor(c.g, inner, ins[0], ins[1])
		tseitinXor(c.g, out, inner, ins[2])
	}

	c.litOf[n] = out
	return out
}

func addClause(g *gini.Gini, lits ...z.Lit) {
	for _, l := range lits {
		g.Add(l)
	}
	g.Add(z.LitNull)
}

// tseitinAnd asserts out <-> (x AND y).
func tseitinAnd(g *gini.Gini, out, x, y z.Lit) {
	addClause(g, out.Not(), x)
	addClause(g, out.Not(), y)
	addClause(g, out, x.Not(), y.Not())
}

// tseitinOr asserts out <-> (x OR y).
func tseitinOr(g *gini.Gini, out, x, y z.Lit) {
	addClause(g, out, x.Not())
	addClause(g, out, y.Not())
	addClause(g, out.Not(), x, y)
}

// tseitinXor asserts out <-> (x XOR y).
func tseitinXor(g *gini.Gini, out, x, y z.Lit) {
	addClause(g, out.Not(), x, y)
	addClause(g, out.Not(), x.Not(), y.Not())
	addClause(g, out, x, y.Not())
	addClause(g, out, x.Not(), y)
}
