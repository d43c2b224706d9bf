// Package resub implements the top-level resubstitution driver: for every
// gate in a network it grows a window, collects divisors, asks a
// resynthesis engine for a smaller replacement, validates it with
// SAT, and substitutes on success, feeding any counterexample back into the
// pattern pool (spec §4.8).
package resub

import (
	"github.com/sirupsen/logrus"

	"github.com/logisynth/aig"
	"github.com/logisynth/aig/resyn"
	"github.com/logisynth/aig/sat"
	"github.com/logisynth/aig/simulate"
	"github.com/logisynth/aig/window"
	"github.com/logisynth/aig/synthstats"
)

// Options configures one resubstitution sweep.
type Options struct {
	CutParams   window.Params
	MaxDivisors int
	// MaxGates bounds the replacement circuit's size (0, 1, or 2 extra
	// gates); a resub is only accepted if it uses fewer gates than the
	// root's MFFC, so raising this only widens the search, it never makes
	// a worse swap acceptable.
	MaxGates int
	Engine   resyn.Engine

	// Log receives one debug-level summary entry per sweep and one
	// trace-level entry per accepted substitution; nil disables logging.
	Log *logrus.Logger
	// Metrics, if set, receives this sweep's totals on return.
	Metrics *synthstats.Recorder
}

// DefaultOptions mirrors the cut/divisor defaults package window ships with
// and picks the XAG decomposition engine.
func DefaultOptions() Options {
	return Options{
		CutParams:   window.DefaultParams(),
		MaxDivisors: 150,
		MaxGates:    2,
		Engine:      resyn.NewXAGDecompose(),
	}
}

// Stats summarizes one Run.
type Stats struct {
	Attempts        int
	Resubstitutions int
	GatesRemoved    int
	SATCalls        int
	Counterexamples int
	Timeouts        int
}

// Run performs a single sweep over net in arena order: every live gate
// (skipping primary inputs, the constant, and don't-touch nodes) is offered
// to tryResub once. The loop bound is snapshotted before iterating: a
// successful resub grows net via Materialize, and a node born mid-sweep
// must wait for the next sweep rather than be visited in this one (spec
// §4.8, "ignore nodes born during the loop").
func Run(net *aig.Network, lv *aig.LevelView, sim *simulate.Simulator, val *sat.Validator, opts Options) Stats {
	var stats Stats
	size := net.Size()
	for n := 1; n < size; n++ {
		if net.IsDead(n) || net.IsPI(n) || net.IsDontTouch(n) {
			continue
		}
		stats.Attempts++
		if tryResub(net, lv, sim, val, n, opts, &stats) {
			stats.Resubstitutions++
		}
	}
	if opts.Log != nil {
		opts.Log.WithFields(logrus.Fields{
			"attempts":        stats.Attempts,
			"resubstitutions": stats.Resubstitutions,
			"gatesRemoved":    stats.GatesRemoved,
			"counterexamples": stats.Counterexamples,
		}).Debug("resubstitution sweep complete")
	}
	if opts.Metrics != nil {
		opts.Metrics.ObserveResub(stats.Attempts, stats.Resubstitutions, stats.GatesRemoved, stats.Counterexamples, stats.Timeouts)
		opts.Metrics.SetGateCount(net.NumGates())
	}
	return stats
}

func tryResub(net *aig.Network, lv *aig.LevelView, sim *simulate.Simulator, val *sat.Validator, root int, opts Options, stats *Stats) bool {
	p := opts.CutParams
	if !p.SkipFanoutLimitForRoots && p.FanoutLimit > 0 && net.FanoutSize(root) > p.FanoutLimit {
		return false
	}
	cut := window.GrowCut(net, lv, root, opts.CutParams)
	return trySubstituteAt(net, lv, sim, val, root, cut, opts, stats)
}

// trySubstituteAt offers root to the resynthesis engine against the divisors
// reachable from cut, an already-grown window shared by every node
// RewriteWindows rewrites inside one window pass.
func trySubstituteAt(net *aig.Network, lv *aig.LevelView, sim *simulate.Simulator, val *sat.Validator, root int, cut window.Cut, opts Options, stats *Stats) bool {
	mffc := window.MFFC(net, root, cut.Leaves)
	divs := window.Divisors(net, cut, mffc, opts.MaxDivisors)
	if len(divs) == 0 {
		return false
	}

	npats := sim.NumPatterns()
	target := resyn.NewTT(sim.Value(aig.NewRef(root, false)), npats)

	divisorTTs := make([]resyn.TT, len(divs))
	divisorRefs := make([]aig.Ref, len(divs))
	for i, d := range divs {
		ref := aig.NewRef(d, false)
		divisorRefs[i] = ref
		divisorTTs[i] = resyn.NewTT(sim.Value(ref), npats)
	}

	maxGates := opts.MaxGates
	if len(mffc)-1 < maxGates {
		maxGates = len(mffc) - 1
	}
	if maxGates < 0 {
		return false
	}

	expr, ok := opts.Engine.Resynthesize(target, divisorTTs, maxGates)
	if !ok {
		return false
	}
	if resyn.NumGates(expr) >= len(mffc) {
		return false
	}

	candidate := resyn.Materialize(net, expr, divisorRefs)
	rootRef := aig.NewRef(root, false)
	gatesCreated := resyn.NumGates(expr)

	outcome := val.CheckEquivalence(rootRef, candidate, nil)
	stats.SATCalls++

	switch outcome {
	case sat.UNSAT:
		net.Substitute(rootRef, candidate)
		stats.GatesRemoved += len(mffc) - gatesCreated
		if opts.Log != nil {
			opts.Log.WithFields(logrus.Fields{
				"root":         root,
				"mffcSize":     len(mffc),
				"gatesCreated": gatesCreated,
				"careCount":    target.CareCount(),
			}).Trace("resubstitution accepted")
		}
		return true
	case sat.SAT:
		stats.Counterexamples++
		sim.AddPattern(val.CounterExample())
		retireIfSpeculative(net, candidate, gatesCreated)
		return false
	default: // sat.TIMEOUT
		stats.Timeouts++
		retireIfSpeculative(net, candidate, gatesCreated)
		return false
	}
}

// Driver bundles a network with the simulator/validator/level-view triple a
// resubstitution pass needs, so a caller running several independent
// networks concurrently (spec §5) can keep one Driver per network without
// juggling the four arguments Run takes directly.
type Driver struct {
	Net *aig.Network
	LV  *aig.LevelView
	Sim *simulate.Simulator
	Val *sat.Validator
	Opts Options
}

// NewDriver wraps net with a fresh level view, simulator, and validator, and
// DefaultOptions; callers that want a seeded pattern pool should call
// d.Sim.Seed before the first Run.
func NewDriver(net *aig.Network) *Driver {
	return &Driver{
		Net:  net,
		LV:   aig.NewLevelView(net),
		Sim:  simulate.New(net),
		Val:  sat.NewValidator(net),
		Opts: DefaultOptions(),
	}
}

// Run performs one resubstitution sweep over d.Net.
func (d *Driver) Run() Stats {
	return Run(d.Net, d.LV, d.Sim, d.Val, d.Opts)
}

// RewriteWindows implements the windowing-rewriting driver variant named in
// spec's system overview table: rather than resubstituting one root at a
// time against its own freshly grown window, it grows one window per root
// and then offers every node of that window's MFFC (not just the root) to
// the same divisor-driven search, splicing in whichever validate, before
// moving to the next root (original_source:
// algorithms/window_rewriting.hpp). Like Run, the loop bound is
// snapshotted once: nodes Materialize creates mid-sweep are left for the
// next sweep.
func RewriteWindows(net *aig.Network, lv *aig.LevelView, sim *simulate.Simulator, val *sat.Validator, opts Options) Stats {
	var stats Stats
	size := net.Size()
	for n := 1; n < size; n++ {
		if net.IsDead(n) || net.IsPI(n) || net.IsDontTouch(n) {
			continue
		}
		cut := window.GrowCut(net, lv, n, opts.CutParams)
		mffc := window.MFFC(net, n, cut.Leaves)

		rewrote := false
		for _, node := range mffc {
			if net.IsDead(node) || net.IsPI(node) || net.IsDontTouch(node) {
				continue
			}
			stats.Attempts++
			if trySubstituteAt(net, lv, sim, val, node, cut, opts, &stats) {
				rewrote = true
			}
		}
		if rewrote {
			stats.Resubstitutions++
		}
	}
	if opts.Log != nil {
		opts.Log.WithFields(logrus.Fields{
			"attempts":        stats.Attempts,
			"resubstitutions": stats.Resubstitutions,
			"gatesRemoved":    stats.GatesRemoved,
			"counterexamples": stats.Counterexamples,
		}).Debug("windowing-rewriting sweep complete")
	}
	if opts.Metrics != nil {
		opts.Metrics.ObserveResub(stats.Attempts, stats.Resubstitutions, stats.GatesRemoved, stats.Counterexamples, stats.Timeouts)
		opts.Metrics.SetGateCount(net.NumGates())
	}
	return stats
}

// retireIfSpeculative takes back gates Materialize freshly allocated for a
// candidate that validation then rejected. A bare divisor reference
// (gatesCreated == 0) is an existing node the network still needs and must
// never be torn out just because it happens to have zero fanout right now.
func retireIfSpeculative(net *aig.Network, candidate aig.Ref, gatesCreated int) {
	if gatesCreated > 0 && net.FanoutSize(candidate.Index()) == 0 {
		net.TakeOutNode(candidate.Index())
	}
}
