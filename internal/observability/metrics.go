// Package observability wires the runtime's ambient Prometheus,
// OpenTelemetry and Sentry stack. None of pkg/reactive, pkg/driver,
// pkg/component or pkg/app's own semantics depend on it being
// configured: every call here degrades to a library-provided no-op
// (the default Prometheus registry, the global no-op tracer provider,
// an uninitialized Sentry client) when the host application never
// touches it.
package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the runtime counters/histograms: a struct of promauto
// collectors bound to a caller-supplied registry, so tests can use an
// isolated registry instead of colliding on prometheus.DefaultRegisterer.
type Metrics struct {
	flushesTotal      prometheus.Counter
	effectRunsTotal   *prometheus.CounterVec
	reconcileDuration prometheus.Histogram
	componentMounts   prometheus.Counter
	suspenseToggles   prometheus.Counter
}

// NewMetrics registers a fresh set of collectors against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		flushesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: "reactive_core",
			Name:      "scheduler_flushes_total",
			Help:      "Total number of scheduler flush passes.",
		}),
		effectRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reactive_core",
			Name:      "effect_runs_total",
			Help:      "Total number of effect body executions, partitioned by phase.",
		}, []string{"phase"}),
		reconcileDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reactive_core",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of a single live-tree reconcile pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		componentMounts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "reactive_core",
			Name:      "component_mounts_total",
			Help:      "Total number of component instances mounted.",
		}),
		suspenseToggles: f.NewCounter(prometheus.CounterOpts{
			Namespace: "reactive_core",
			Name:      "suspense_toggles_total",
			Help:      "Total number of suspense boundary fallback/reveal toggles.",
		}),
	}
}

var (
	defaultOnce sync.Once
	defaultM    *Metrics
)

// Default lazily builds a package-level Metrics bound to
// prometheus.DefaultRegisterer, for call sites inside pkg/reactive,
// pkg/driver and pkg/component that stay free of any app-level
// registry choice.
func Default() *Metrics {
	defaultOnce.Do(func() { defaultM = NewMetrics(prometheus.DefaultRegisterer) })
	return defaultM
}

func (m *Metrics) IncFlush()                        { m.flushesTotal.Inc() }
func (m *Metrics) IncEffectRun(phase string)         { m.effectRunsTotal.WithLabelValues(phase).Inc() }
func (m *Metrics) ObserveReconcile(d time.Duration)  { m.reconcileDuration.Observe(d.Seconds()) }
func (m *Metrics) IncComponentMount()                { m.componentMounts.Inc() }
func (m *Metrics) IncSuspenseToggle()                { m.suspenseToggles.Inc() }
