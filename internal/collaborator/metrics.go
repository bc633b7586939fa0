package collaborator

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics registered for the
// collaborator server.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reactorctl").
	Namespace string

	// Buckets are the histogram buckets for drain latency.
	Buckets []float64

	// Registry is the Prometheus registry metrics are registered against.
	Registry prometheus.Registerer
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithBuckets sets the drain-latency histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reactorctl",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the collectors the collaborator server exposes on /metrics.
type metrics struct {
	effectRuns     prometheus.Counter
	drainDuration  prometheus.Histogram
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

var (
	globalMetrics     *metrics
	globalMetricsOnce sync.Once
	globalMetricsMu   sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "effect_runs_total",
			Help:      "Total number of times the board's effect body ran.",
		}),
		drainDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "flush_duration_seconds",
			Help:      "Duration of each scheduler Flush call.",
			Buckets:   config.Buckets,
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "active_sessions",
			Help:      "Number of connected dashboard WebSocket sessions.",
		}),
		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket errors by type.",
		}, []string{"type"}),
	}
}

// EnableMetrics registers the collaborator's Prometheus collectors exactly
// once per process and returns the collector set for recording.
func EnableMetrics(opts ...MetricsOption) *Collector {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	globalMetricsOnce.Do(func() {
		globalMetrics = initMetrics(config)
	})
	m := globalMetrics
	globalMetricsMu.Unlock()

	return &Collector{m: m}
}

// Collector exposes the subset of collaborator metrics handlers are allowed
// to record against, keeping the raw prometheus types out of caller code.
type Collector struct {
	m *metrics
}

// RecordEffectRun increments the effect-run counter.
func (c *Collector) RecordEffectRun() {
	if c == nil || c.m == nil {
		return
	}
	c.m.effectRuns.Inc()
}

// TimeFlush returns a function that, when called, records the elapsed time
// since TimeFlush was invoked as a drain-duration observation.
func (c *Collector) TimeFlush() func() {
	if c == nil || c.m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		c.m.drainDuration.Observe(time.Since(start).Seconds())
	}
}

// SessionConnected increments the active-session gauge.
func (c *Collector) SessionConnected() {
	if c == nil || c.m == nil {
		return
	}
	c.m.activeSessions.Inc()
}

// SessionDisconnected decrements the active-session gauge.
func (c *Collector) SessionDisconnected() {
	if c == nil || c.m == nil {
		return
	}
	c.m.activeSessions.Dec()
}

// RecordWebSocketError increments the websocket-error counter for errType.
func (c *Collector) RecordWebSocketError(errType string) {
	if c == nil || c.m == nil {
		return
	}
	c.m.wsErrors.WithLabelValues(errType).Inc()
}
