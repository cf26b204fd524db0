// Package metrics provides an optional Prometheus instrumentation layer for
// bbsolver.Solver, grounded on dshills-langgraph-go/graph's
// PrometheusMetrics: one struct bundling a handful of gauges and a counter,
// registered once against a caller-supplied registry, with every update
// method a no-op cheap enough to call from the hot path unconditionally.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the solver's introspection surface (§6 of the design
// notes: explored-node counts and best bounds) as Prometheus series. A nil
// *Recorder is valid and every method becomes a no-op, so callers can wire
// it unconditionally without branching on whether metrics were requested.
type Recorder struct {
	explored       prometheus.Counter
	bestLowerBound prometheus.Gauge
	bestUpperBound prometheus.Gauge
	ongoingWorkers prometheus.Gauge
	frontierSize   prometheus.Gauge
}

// NewRecorder registers the bbmdd_* metric family against registry. Pass
// prometheus.DefaultRegisterer for the global registry, or a fresh
// prometheus.NewRegistry() for test isolation.
func NewRecorder(registry prometheus.Registerer) *Recorder {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Recorder{
		explored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bbmdd",
			Name:      "explored_total",
			Help:      "Total subproblems popped from the frontier and compiled",
		}),
		bestLowerBound: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "bbmdd",
			Name:      "best_lower_bound",
			Help:      "Current best known feasible objective value",
		}),
		bestUpperBound: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "bbmdd",
			Name:      "best_upper_bound",
			Help:      "Best upper bound at termination (equal to best_lower_bound once solved)",
		}),
		ongoingWorkers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "bbmdd",
			Name:      "ongoing_workers",
			Help:      "Number of workers currently compiling a subproblem",
		}),
		frontierSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "bbmdd",
			Name:      "frontier_size",
			Help:      "Number of open subproblems waiting in the frontier",
		}),
	}
}

// IncExplored increments the explored-subproblems counter.
func (r *Recorder) IncExplored() {
	if r == nil {
		return
	}
	r.explored.Inc()
}

// SetBestLowerBound records a new best lower bound.
func (r *Recorder) SetBestLowerBound(v int) {
	if r == nil {
		return
	}
	r.bestLowerBound.Set(float64(v))
}

// SetBestUpperBound records the terminal upper bound.
func (r *Recorder) SetBestUpperBound(v int) {
	if r == nil {
		return
	}
	r.bestUpperBound.Set(float64(v))
}

// SetOngoingWorkers records the current in-flight worker count.
func (r *Recorder) SetOngoingWorkers(v int) {
	if r == nil {
		return
	}
	r.ongoingWorkers.Set(float64(v))
}

// SetFrontierSize records the current frontier size.
func (r *Recorder) SetFrontierSize(v int) {
	if r == nil {
		return
	}
	r.frontierSize.Set(float64(v))
}
