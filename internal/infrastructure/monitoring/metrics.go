package monitoring

import (
	"time"

	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	Dispatches       *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	Failures         *prometheus.CounterVec
	GrantPrompts     *prometheus.CounterVec
	InFlight         prometheus.Gauge
}

// NewMetrics creates a metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostbridge_dispatch_total",
				Help: "Total number of dispatched channel requests",
			},
			[]string{"operation", "status"},
		),
		DispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hostbridge_dispatch_duration_seconds",
				Help:    "Dispatch duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		Failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostbridge_dispatch_failures_total",
				Help: "Total number of failed dispatches by error kind",
			},
			[]string{"operation", "kind"},
		),
		GrantPrompts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostbridge_permission_prompts_total",
				Help: "Requests refused pending a permission grant",
			},
			[]string{"operation"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "hostbridge_dispatch_in_flight",
				Help: "1 while a request is being dispatched",
			},
		),
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordDispatch records one answered request. Safe on a nil receiver.
func (m *Metrics) RecordDispatch(operation string, result *types.Result, duration time.Duration) {
	if m == nil || result == nil {
		return
	}
	m.Dispatches.WithLabelValues(operation, string(result.Status())).Inc()
	m.DispatchDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if result.Failure != nil {
		m.Failures.WithLabelValues(operation, string(result.Failure.Kind)).Inc()
		if result.Failure.Kind == types.KindPermissionRequired {
			m.GrantPrompts.WithLabelValues(operation).Inc()
		}
	}
}

// SetDispatching mirrors the router state. Safe on a nil receiver.
func (m *Metrics) SetDispatching(active bool) {
	if m == nil {
		return
	}
	if active {
		m.InFlight.Set(1)
		return
	}
	m.InFlight.Set(0)
}

// WriteTextfile writes every metric in the text exposition format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Timer measures one dispatch
type Timer struct {
	start     time.Time
	metrics   *Metrics
	operation string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, operation string) *Timer {
	return &Timer{
		start:     time.Now(),
		metrics:   metrics,
		operation: operation,
	}
}

// Stop stops the timer and records the result
func (t *Timer) Stop(result *types.Result) {
	t.metrics.RecordDispatch(t.operation, result, time.Since(t.start))
}
