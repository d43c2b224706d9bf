// Package simulate implements the pattern simulator: packed bit-vector
// simulation of every live node against a growing pool of PI assignments
// (spec §4.2).
package simulate

import (
	"math/rand"

	"github.com/logisynth/aig"
)

// Simulator maintains, for each live node, a partial truth table evaluating
// that node's Boolean function over the stored pattern pool.
type Simulator struct {
	net    *aig.Network
	tables []pool
	npats  int
	dirty  bool
}

// New attaches a Simulator to net, subscribing to its add events so that
// newly created nodes' truth tables are filled on demand (spec §4.2).
func New(net *aig.Network) *Simulator {
	s := &Simulator{net: net}
	s.tables = make([]pool, net.Size())
	net.OnAdd(s.handleAdd)
	return s
}

func (s *Simulator) ensureTable(n int) {
	for len(s.tables) <= n {
		s.tables = append(s.tables, pool{})
	}
}

func (s *Simulator) handleAdd(n int) {
	s.ensureTable(n)
	s.tables[n].grow(s.npats)
	if s.net.Kind(n) != aig.GateKindPI && s.net.Kind(n) != aig.GateKindConst {
		s.evaluate(n)
	}
}

// NumPatterns returns the number of patterns currently in the pool.
func (s *Simulator) NumPatterns() int { return s.npats }

// AddPattern appends one pattern to the pool: bits[i] is the value applied
// to the i-th primary input (in Network.PIs order); a Simulator becomes
// dirty until the next Refresh (performed lazily by Value).
func (s *Simulator) AddPattern(bits []bool) {
	pat := s.npats
	s.npats++
	for i, pi := range s.net.PIs() {
		s.ensureTable(pi.Index())
		s.tables[pi.Index()].grow(s.npats)
		v := false
		if i < len(bits) {
			v = bits[i]
		}
		s.tables[pi.Index()].set(pat, v)
	}
	s.dirty = true
}

// Seed grows the pool with an initial battery of patterns before the main
// resubstitution loop starts: the all-zero and all-one assignments, one
// stuck-at-1 and one stuck-at-0 pattern per PI, and extraCount uniformly
// random patterns, grounded on original_source's
// algorithms/pattern_generation.hpp.
func (s *Simulator) Seed(extraCount int, rng *rand.Rand) {
	numPIs := s.net.NumPIs()
	s.AddPattern(make([]bool, numPIs))
	all1 := make([]bool, numPIs)
	for i := range all1 {
		all1[i] = true
	}
	s.AddPattern(all1)

	for i := 0; i < numPIs; i++ {
		stuck1 := make([]bool, numPIs)
		stuck1[i] = true
		s.AddPattern(stuck1)

		stuck0 := make([]bool, numPIs)
		for j := range stuck0 {
			stuck0[j] = true
		}
		stuck0[i] = false
		s.AddPattern(stuck0)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	for i := 0; i < extraCount; i++ {
		bits := make([]bool, numPIs)
		for j := range bits {
			bits[j] = rng.Intn(2) == 1
		}
		s.AddPattern(bits)
	}
}

// Refresh brings every live node's truth table up to date with the current
// pattern pool. It is called automatically by Value; exported so
// callers that care about amortizing many AddPattern calls can batch them.
func (s *Simulator) Refresh() {
	if !s.dirty {
		return
	}
	for n := 1; n < s.net.Size(); n++ {
		if s.net.IsDead(n) {
			continue
		}
		s.ensureTable(n)
		s.tables[n].grow(s.npats)
		kind := s.net.Kind(n)
		if kind == aig.GateKindPI || kind == aig.GateKindConst {
			continue
		}
		s.evaluate(n)
	}
	s.dirty = false
}

func (s *Simulator) evaluate(n int) {
	kind := s.net.Kind(n)
	fanins := s.net.Fanins(n)
	nw := wordsFor(s.npats)
	s.tables[n].grow(s.npats)
	tbl := &s.tables[n]

	get := func(i, w int) uint64 {
		r := fanins[i]
		src := s.tables[r.Index()].words
		var v uint64
		if w < len(src) {
			v = src[w]
		}
		if r.IsComplemented() {
			v = ^v
		}
		return v
	}

	switch kind {
	case aig.GateKindAnd:
		for w := 0; w < nw; w++ {
			tbl.words[w] = get(0, w) & get(1, w)
		}
	case aig.GateKindXor:
		for w := 0; w < nw; w++ {
			tbl.words[w] = get(0, w) ^ get(1, w)
		}
	case aig.GateKindMaj:
		for w := 0; w < nw; w++ {
			a, b, c := get(0, w), get(1, w), get(2, w)
			tbl.words[w] = (a & b) | (a & c) | (b & c)
		}
	case aig.GateKindXor3:
		for w := 0; w < nw; w++ {
			tbl.words[w] = get(0, w) ^ get(1, w) ^ get(2, w)
		}
	}
}

func maskTail(words []uint64, nbits int) {
	if len(words) == 0 || nbits%64 == 0 {
		return
	}
	lastBits := uint(nbits % 64)
	mask := uint64(1)<<lastBits - 1
	words[len(words)-1] &= mask
}

// PIWords returns a copy of the i-th primary input's raw packed pattern
// words (Network.PIs order), for package patternio's persisted pattern
// file format.
func (s *Simulator) PIWords(i int) []uint64 {
	pi := s.net.PIs()[i]
	s.ensureTable(pi.Index())
	return append([]uint64(nil), s.tables[pi.Index()].words...)
}

// LoadPatterns replaces the pattern pool wholesale with npats patterns, one
// packed bit-vector per primary input in Network.PIs order, for package
// patternio's file loader. Every node's table is marked dirty so the next
// Value call re-evaluates against the restored pool.
func (s *Simulator) LoadPatterns(perPI [][]uint64, npats int) {
	s.npats = npats
	for i, pi := range s.net.PIs() {
		s.ensureTable(pi.Index())
		s.tables[pi.Index()] = pool{words: append([]uint64(nil), perPI[i]...), bits: npats}
	}
	s.dirty = true
}

// Value returns the current truth table for signal ref (complement applied,
// padded bits beyond NumPatterns masked to zero), refreshing the pool if
// dirty.
func (s *Simulator) Value(ref aig.Ref) []uint64 {
	s.Refresh()
	s.ensureTable(ref.Index())
	src := s.tables[ref.Index()].words
	nw := wordsFor(s.npats)
	out := make([]uint64, nw)
	copy(out, src)
	if ref.IsComplemented() {
		for i := range out {
			out[i] = ^out[i]
		}
	}
	maskTail(out, s.npats)
	return out
}
