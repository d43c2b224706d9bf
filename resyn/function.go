// Package resyn implements the decomposition-based resynthesis engine:
// given a target function (with a don't-care mask) and a pool of divisor
// functions, it searches for a small replacement circuit computing the
// target wherever it is cared about (spec §4.4).
package resyn

import "math/bits"

// TT is a simulated truth table over a fixed number of patterns, packed the
// same way package simulate stores them, plus an optional care mask (bits
// set to 0 are observability don't-cares and may be matched either way).
type TT struct {
	Bits []uint64
	Care []uint64 // nil means "fully cared", i.e. every bit constrains the match
	n    int      // number of simulation patterns this table covers
}

func wordsFor(n int) int { return (n + 63) / 64 }

// NewTT wraps bits as a fully-cared table of n patterns.
func NewTT(bits []uint64, n int) TT {
	return TT{Bits: bits, n: n}
}

// NewTTWithCare wraps bits with an explicit care mask.
func NewTTWithCare(bits, care []uint64, n int) TT {
	return TT{Bits: bits, Care: care, n: n}
}

func (t TT) careWord(w int) uint64 {
	if t.Care == nil {
		if full := wordsFor(t.n); w >= full {
			return 0
		} else if w == full-1 && t.n%64 != 0 {
			return uint64(1)<<uint(t.n%64) - 1
		}
		return ^uint64(0)
	}
	if w < len(t.Care) {
		return t.Care[w]
	}
	return 0
}

func (t TT) bitWord(w int) uint64 {
	if w < len(t.Bits) {
		return t.Bits[w]
	}
	return 0
}

// Not returns the bitwise complement; the care mask is unchanged.
func (t TT) Not() TT {
	nw := wordsFor(t.n)
	out := make([]uint64, nw)
	for w := 0; w < nw; w++ {
		out[w] = ^t.bitWord(w)
	}
	return TT{Bits: out, Care: t.Care, n: t.n}
}

func combine(a, b TT, op func(x, y uint64) uint64) TT {
	n := a.n
	if b.n > n {
		n = b.n
	}
	nw := wordsFor(n)
	out := make([]uint64, nw)
	for w := 0; w < nw; w++ {
		out[w] = op(a.bitWord(w), b.bitWord(w))
	}
	return TT{Bits: out, n: n}
}

// And returns the bitwise AND of a and b (care masks dropped: intermediate
// candidate signals are always fully cared, only the final target carries a
// care mask).
func And(a, b TT) TT { return combine(a, b, func(x, y uint64) uint64 { return x & y }) }

// Xor returns the bitwise XOR of a and b.
func Xor(a, b TT) TT { return combine(a, b, func(x, y uint64) uint64 { return x ^ y }) }

// Maj returns the bitwise 3-input majority of a, b, c.
func Maj(a, b, c TT) TT {
	n := a.n
	if b.n > n {
		n = b.n
	}
	if c.n > n {
		n = c.n
	}
	nw := wordsFor(n)
	out := make([]uint64, nw)
	for w := 0; w < nw; w++ {
		x, y, z := a.bitWord(w), b.bitWord(w), c.bitWord(w)
		out[w] = (x & y) | (x & z) | (y & z)
	}
	return TT{Bits: out, n: n}
}

// Mux returns cond ? onTrue : onFalse, bitwise.
func Mux(cond, onTrue, onFalse TT) TT {
	n := cond.n
	if onTrue.n > n {
		n = onTrue.n
	}
	if onFalse.n > n {
		n = onFalse.n
	}
	nw := wordsFor(n)
	out := make([]uint64, nw)
	for w := 0; w < nw; w++ {
		c := cond.bitWord(w)
		out[w] = (c & onTrue.bitWord(w)) | (^c & onFalse.bitWord(w))
	}
	return TT{Bits: out, n: n}
}

// CareCount returns how many of the table's n simulation patterns its care
// mask actually constrains (all of them, for a fully-cared table). A low
// count relative to n means most of the pattern pool is an observability
// don't-care for this target, which is useful for a driver deciding whether
// growing the pool further would sharpen the search.
func (t TT) CareCount() int {
	if t.Care == nil {
		return t.n
	}
	nw := wordsFor(t.n)
	count := 0
	for w := 0; w < nw; w++ {
		count += bits.OnesCount64(t.careWord(w))
	}
	return count
}

// ConstantValue reports whether t takes a single value over every bit its
// own care mask marks as observed, and if so, which one (spec §4.4 step 1:
// "if F∧C=0, return 0; if ¬F∧C=0, return 1"). A table with no cared bits at
// all satisfies F∧C=0 trivially and is reported as constant-false.
func ConstantValue(t TT) (value, ok bool) {
	nw := wordsFor(t.n)
	allOff, allOn := true, true
	for w := 0; w < nw; w++ {
		care := t.careWord(w)
		if care == 0 {
			continue
		}
		bits := t.bitWord(w) & care
		if bits != 0 {
			allOff = false
		}
		if bits != care {
			allOn = false
		}
	}
	switch {
	case allOff:
		return false, true
	case allOn:
		return true, true
	default:
		return false, false
	}
}

// EqualUnderCare reports whether target and candidate agree on every bit the
// target's care mask marks as observed.
func EqualUnderCare(target, candidate TT) bool {
	nw := wordsFor(target.n)
	for w := 0; w < nw; w++ {
		care := target.careWord(w)
		if target.bitWord(w)&care != candidate.bitWord(w)&care {
			return false
		}
	}
	return true
}
