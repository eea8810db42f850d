// Package metrics exposes Prometheus instrumentation for the validation
// engine: validation throughput, diagnostics by rule and severity, schema
// load outcomes, reload cycles, and manifest cache effectiveness.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the engine records into. All methods are
// nil-safe so instrumentation stays optional: a nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	validationsTotal   prometheus.Counter
	validationDuration prometheus.Histogram
	diagnosticsTotal   *prometheus.CounterVec
	suppressedTotal    prometheus.Counter

	schemaLoadDuration prometheus.Histogram
	schemaSourceErrors prometheus.Counter
	schemaElements     prometheus.Gauge
	reloadsTotal       prometheus.Counter
	cacheFallbacks     prometheus.Counter
}

// New creates and registers all collectors. If registry is nil a fresh
// private registry is used.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		validationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wclint",
			Name:      "validations_total",
			Help:      "Total number of document validation passes.",
		}),
		validationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wclint",
			Name:      "validation_duration_seconds",
			Help:      "Duration of one document validation pass.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		diagnosticsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wclint",
			Name:      "diagnostics_total",
			Help:      "Diagnostics produced, by rule and severity.",
		}, []string{"rule", "severity"}),
		suppressedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wclint",
			Name:      "diagnostics_suppressed_total",
			Help:      "Diagnostics dropped by suppression directives.",
		}),
		schemaLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wclint",
			Name:      "schema_load_duration_seconds",
			Help:      "Duration of a full schema index load.",
			Buckets:   prometheus.DefBuckets,
		}),
		schemaSourceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wclint",
			Name:      "schema_source_errors_total",
			Help:      "Schema sources that failed to fetch or parse.",
		}),
		schemaElements: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wclint",
			Name:      "schema_elements",
			Help:      "Element definitions in the published schema index.",
		}),
		reloadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wclint",
			Name:      "reloads_total",
			Help:      "Completed reload cycles.",
		}),
		cacheFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wclint",
			Name:      "manifest_cache_fallbacks_total",
			Help:      "Remote fetches served from the manifest cache after a failure.",
		}),
	}

	registry.MustRegister(
		m.validationsTotal,
		m.validationDuration,
		m.diagnosticsTotal,
		m.suppressedTotal,
		m.schemaLoadDuration,
		m.schemaSourceErrors,
		m.schemaElements,
		m.reloadsTotal,
		m.cacheFallbacks,
	)
	return m
}

// Registry returns the registry collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveValidation records one validation pass.
func (m *Metrics) ObserveValidation(seconds float64) {
	if m == nil {
		return
	}
	m.validationsTotal.Inc()
	m.validationDuration.Observe(seconds)
}

// CountDiagnostic records one emitted diagnostic.
func (m *Metrics) CountDiagnostic(rule, severity string) {
	if m == nil {
		return
	}
	m.diagnosticsTotal.WithLabelValues(rule, severity).Inc()
}

// CountSuppressed records one diagnostic dropped by a directive.
func (m *Metrics) CountSuppressed() {
	if m == nil {
		return
	}
	m.suppressedTotal.Inc()
}

// ObserveSchemaLoad records one completed index load.
func (m *Metrics) ObserveSchemaLoad(seconds float64, elements int) {
	if m == nil {
		return
	}
	m.schemaLoadDuration.Observe(seconds)
	m.schemaElements.Set(float64(elements))
}

// CountSourceError records one scoped schema source failure.
func (m *Metrics) CountSourceError() {
	if m == nil {
		return
	}
	m.schemaSourceErrors.Inc()
}

// CountReload records one completed reload cycle.
func (m *Metrics) CountReload() {
	if m == nil {
		return
	}
	m.reloadsTotal.Inc()
}

// CountCacheFallback records one fetch served from the manifest cache.
func (m *Metrics) CountCacheFallback() {
	if m == nil {
		return
	}
	m.cacheFallbacks.Inc()
}
