// Package metrics records resolution statistics with Prometheus collectors.
//
// Collectors live on a private registry so several App instances (and tests)
// never clash on the global one. A one-shot run exports them with
// WriteTextfile for the node-exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeResolved = "resolved"
	OutcomeFailed   = "failed"
)

// Recorder owns the resolution collectors.
type Recorder struct {
	registry *prometheus.Registry

	resolutions *prometheus.CounterVec
	errors      *prometheus.CounterVec
	collapsed   prometheus.Counter
	unstable    *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifold_resolutions_total",
				Help: "Number of build units resolved, by outcome.",
			},
			[]string{"outcome"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifold_resolution_errors_total",
				Help: "Number of declaration errors, by kind.",
			},
			[]string{"kind"},
		),
		collapsed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "manifold_dependencies_collapsed_total",
				Help: "Number of duplicate dependency declarations folded into an earlier entry.",
			},
		),
		unstable: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifold_unstable_versions_total",
				Help: "Number of external dependencies pinned to a non-release version, by stability.",
			},
			[]string{"stability"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "manifold_resolution_duration_seconds",
				Help:    "Time taken to resolve a single build unit.",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
	}

	r.registry.MustRegister(r.resolutions, r.errors, r.collapsed, r.unstable, r.duration)
	return r
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveResolved records a successful resolution.
func (r *Recorder) ObserveResolved(elapsed time.Duration, collapsed int) {
	r.resolutions.WithLabelValues(OutcomeResolved).Inc()
	r.collapsed.Add(float64(collapsed))
	r.duration.Observe(elapsed.Seconds())
}

// ObserveFailed records a failed resolution with the error kind label.
func (r *Recorder) ObserveFailed(elapsed time.Duration, kind string) {
	r.resolutions.WithLabelValues(OutcomeFailed).Inc()
	r.errors.WithLabelValues(kind).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// ObserveUnstable records one external dependency with a non-release version.
func (r *Recorder) ObserveUnstable(stability string) {
	r.unstable.WithLabelValues(stability).Inc()
}

// WriteTextfile writes every collector in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
