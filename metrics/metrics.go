// Package metrics provides optional Prometheus counters for the
// interp package. It is ambient observability, not a spec
// requirement: every method is nil-safe so an Interpreter built
// without Options.Metrics pays no cost and needs no guard at call
// sites, mirroring how Nomad's metrics helpers are threaded through
// optionally via its own client_golang counters.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters a running Interpreter updates. A nil
// *Metrics is valid and every method on it is a no-op.
type Metrics struct {
	Evaluations   prometheus.Counter
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	BuiltinErrors prometheus.Counter
}

// New constructs a Metrics instance. If reg is non-nil, the counters
// are registered against it; pass nil to construct unregistered
// counters (useful in tests that only want the nil-safety behavior).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "glang", Name: "evaluations_total",
			Help: "Total number of top-level Eval/EvalFile calls.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "glang", Name: "module_cache_hits_total",
			Help: "Total number of fetch calls served from the module cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "glang", Name: "module_cache_misses_total",
			Help: "Total number of fetch calls that evaluated a module for the first time.",
		}),
		BuiltinErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "glang", Name: "builtin_errors_total",
			Help: "Total number of built-in function calls that failed.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Evaluations, m.CacheHits, m.CacheMisses, m.BuiltinErrors)
	}

	return m
}

func (m *Metrics) IncEvaluations() {
	if m == nil {
		return
	}
	m.Evaluations.Inc()
}

func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

func (m *Metrics) IncCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

func (m *Metrics) IncBuiltinError() {
	if m == nil {
		return
	}
	m.BuiltinErrors.Inc()
}
