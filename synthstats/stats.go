// Package synthstats exposes resubstitution and functional-reduction
// progress as Prometheus collectors, grounded on pkg/metrics's
// Gauge/Counter style.
package synthstats

import "github.com/prometheus/client_golang/prometheus"

// Recorder owns its own registry rather than registering into Prometheus's
// global default one: a synthesis run is typically one of several sharing a
// process (parallel test cases, multiple networks optimized back to back),
// and a package-level global would double-register and panic the second
// time a Recorder is built.
type Recorder struct {
	registry *prometheus.Registry

	nodesAttempted  prometheus.Counter
	substitutions   prometheus.Counter
	gatesRemoved    prometheus.Counter
	counterexamples prometheus.Counter
	satTimeouts     prometheus.Counter
	functionalMerges prometheus.Counter
	gateCount       prometheus.Gauge
}

// NewRecorder builds and registers a fresh set of collectors.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.nodesAttempted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resub_nodes_attempted_total",
		Help: "Nodes offered to the resubstitution driver",
	})
	r.substitutions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resub_substitutions_total",
		Help: "Candidates confirmed equivalent by SAT and substituted",
	})
	r.gatesRemoved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resub_gates_removed_total",
		Help: "Net gate count reduction from accepted substitutions",
	})
	r.counterexamples = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resub_counterexamples_total",
		Help: "Candidates refuted by SAT, growing the pattern pool",
	})
	r.satTimeouts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "resub_sat_timeouts_total",
		Help: "SAT checks that hit the conflict budget without a verdict",
	})
	r.functionalMerges = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reduce_functional_merges_total",
		Help: "Structurally distinct nodes merged by functional reduction",
	})
	r.gateCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "network_gate_count",
		Help: "Live gate count of the network being synthesized",
	})

	r.registry.MustRegister(
		r.nodesAttempted,
		r.substitutions,
		r.gatesRemoved,
		r.counterexamples,
		r.satTimeouts,
		r.functionalMerges,
		r.gateCount,
	)
	return r
}

// Registry exposes the underlying registry, e.g. to serve it over an HTTP
// handler in a host program.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveResub folds one resubstitution sweep's totals into the counters.
func (r *Recorder) ObserveResub(attempts, substitutions, gatesRemoved, counterexamples, timeouts int) {
	r.nodesAttempted.Add(float64(attempts))
	r.substitutions.Add(float64(substitutions))
	r.gatesRemoved.Add(float64(gatesRemoved))
	r.counterexamples.Add(float64(counterexamples))
	r.satTimeouts.Add(float64(timeouts))
}

// ObserveReduce folds one functional-reduction pass's totals in.
func (r *Recorder) ObserveReduce(merged, counterexamples int) {
	r.functionalMerges.Add(float64(merged))
	r.counterexamples.Add(float64(counterexamples))
}

// SetGateCount records the network's current live gate count.
func (r *Recorder) SetGateCount(n int) {
	r.gateCount.Set(float64(n))
}
