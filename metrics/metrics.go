// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus collectors for solver activity.
//
// A Recorder is bound to one prometheus.Registerer; pass
// prometheus.DefaultRegisterer in binaries and a fresh registry in tests.
// Every method is safe on a nil *Recorder, so libraries can record
// unconditionally.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "rowtrace"

	// History action labels.
	ActionApply = "apply"
	ActionUndo  = "undo"
	ActionRedo  = "redo"
	ActionJump  = "jump"
	ActionReset = "reset"

	// Outcome labels.
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeNoop     = "noop"
)

// Recorder groups the solver collectors.
type Recorder struct {
	operations      *prometheus.CounterVec
	historyActions  *prometheus.CounterVec
	steps           *prometheus.CounterVec
	classifications *prometheus.CounterVec
	sessions        prometheus.Gauge
	traceDuration   prometheus.Histogram
}

// NewRecorder registers the collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)

	return &Recorder{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timeline",
			Name:      "operations_total",
			Help:      "Row operations submitted to a timeline, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		historyActions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timeline",
			Name:      "history_actions_total",
			Help:      "Undo/redo/jump/reset actions, by action and outcome.",
		}, []string{"action", "outcome"}),
		steps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "elimination",
			Name:      "steps_total",
			Help:      "Elimination steps emitted, by phase.",
		}, []string{"phase"}),
		classifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solution",
			Name:      "classifications_total",
			Help:      "Solution classifications computed, by kind.",
		}, []string{"kind"}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Sessions currently held in memory.",
		}),
		traceDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "elimination",
			Name:      "trace_duration_seconds",
			Help:      "Wall time to precompute a full elimination trace.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
}

// Operation counts one submitted row operation.
func (r *Recorder) Operation(kind, outcome string) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(kind, outcome).Inc()
}

// HistoryAction counts one undo/redo/jump/reset.
func (r *Recorder) HistoryAction(action, outcome string) {
	if r == nil {
		return
	}
	r.historyActions.WithLabelValues(action, outcome).Inc()
}

// Step counts one emitted elimination step.
func (r *Recorder) Step(phase string) {
	if r == nil {
		return
	}
	r.steps.WithLabelValues(phase).Inc()
}

// Classification counts one classification.
func (r *Recorder) Classification(kind string) {
	if r == nil {
		return
	}
	r.classifications.WithLabelValues(kind).Inc()
}

// SessionsActive sets the in-memory session gauge.
func (r *Recorder) SessionsActive(n int) {
	if r == nil {
		return
	}
	r.sessions.Set(float64(n))
}

// ObserveTrace records the duration of one precomputed trace in seconds.
func (r *Recorder) ObserveTrace(seconds float64) {
	if r == nil {
		return
	}
	r.traceDuration.Observe(seconds)
}

// Handler serves the collectors of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
