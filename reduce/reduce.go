// Package reduce implements the functional reduction pass: a
// simulation-guided structural sweep that finds nodes computing the same
// function (up to complementation) as an already-seen node, confirms the
// match with the SAT validator, and substitutes on success (spec §4.6).
package reduce

import (
	"github.com/logisynth/aig"
	"github.com/logisynth/aig/sat"
	"github.com/logisynth/aig/simulate"
)

// Stats summarizes one Pass.
type Stats struct {
	Merged          int
	Counterexamples int
}

// Pass performs a single sweep over net in topological (arena) order.
// A node whose simulated truth table (or its complement) coincides with an
// already-classed node is proposed as a duplicate; sat.Validator either
// confirms it (substituted immediately) or refutes it, in which case the
// counterexample is fed back into sim and the node is left unmerged (and
// not added to any class) for the next Pass to reconsider.
func Pass(net *aig.Network, sim *simulate.Simulator, val *sat.Validator) Stats {
	var stats Stats
	classes := make(map[string]aig.Ref, net.Size())

	// Pre-seed the constant-0/constant-1 class with the real constant node,
	// so a gate that is functionally constant purely by correlation of its
	// fanins (not built as AND(x,¬x) and therefore not collapsed at
	// creation time) merges into aig.NewRef(0,false)/NewRef(0,true) rather
	// than into the first other constant gate the sweep happens to reach
	// (spec §4.6 step 3, "or 0, or 1").
	constRef := net.GetConstant(false)
	constSig, constComp := canonicalSignature(sim.Value(constRef))
	classes[constSig] = constRef.WithPolarity(constComp)

	for n := 1; n < net.Size(); n++ {
		if net.IsDead(n) || net.IsPI(n) || net.IsDontTouch(n) {
			continue
		}
		ref := aig.NewRef(n, false)
		sig, comp := canonicalSignature(sim.Value(ref))

		rep, ok := classes[sig]
		if !ok {
			// The first node seen with this signature becomes the class's
			// representative: rep.WithPolarity already makes value(rep)
			// equal the canonical signature value.
			classes[sig] = ref.WithPolarity(comp)
			continue
		}
		if rep.Index() == n {
			continue
		}

		// candidate is node n adjusted to the same polarity as rep, so the
		// two signals carry identical values whenever the match is real.
		candidate := ref.WithPolarity(comp)
		outcome := val.CheckEquivalence(rep, candidate, nil)
		switch outcome {
		case sat.UNSAT:
			target := rep.WithPolarity(rep.IsComplemented() != comp)
			net.Substitute(ref, target)
			stats.Merged++
		default:
			stats.Counterexamples++
			sim.AddPattern(val.CounterExample())
		}
	}

	return stats
}

func canonicalSignature(words []uint64) (string, bool) {
	raw := wordsToBytes(words)
	comp := wordsToBytes(complementWords(words))
	if string(raw) <= string(comp) {
		return string(raw), false
	}
	return string(comp), true
}

func complementWords(words []uint64) []uint64 {
	out := make([]uint64, len(words))
	for i, w := range words {
		out[i] = ^w
	}
	return out
}

func wordsToBytes(words []uint64) []byte {
	out := make([]byte, len(words)*8)
	for i, w := range words {
		for b := 0; b < 8; b++ {
			out[i*8+b] = byte(w >> (8 * b))
		}
	}
	return out
}
