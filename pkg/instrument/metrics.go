package instrument

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reval-dev/reval/pkg/reval"
)

// MetricsConfig configures container metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reval").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures container metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "reval",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for watched containers.
//
// Metrics collected:
//   - reval_emissions_total: Counter of emissions by container name
//   - reval_observers: Gauge of active subscriptions per watched container
type Metrics struct {
	config MetricsConfig

	emissionsTotal *prometheus.CounterVec
}

// NewMetrics creates the metric set. Each call registers fresh collectors, so
// tests should pass WithRegistry(prometheus.NewRegistry()).
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		config: config,
		emissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "emissions_total",
			Help:        "Total number of emissions delivered by watched containers",
			ConstLabels: config.ConstLabels,
		}, []string{"container"}),
	}
}

// Watch instruments a container under the given name: every emission
// increments the emissions counter, and an observers gauge tracks the
// container's active subscription count (the watcher included).
//
// Names must be unique per Metrics instance; a second Watch with the same
// name panics on gauge registration, like any duplicate Prometheus collector.
// The returned handle stops the counting when disposed; the gauge keeps
// reporting the container's subscription count for its lifetime.
func Watch[T any](m *Metrics, name string, c *reval.Container[T]) *reval.Handle {
	emissions := m.emissionsTotal.WithLabelValues(name)

	promauto.With(m.config.Registry).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.config.Namespace,
		Subsystem:   m.config.Subsystem,
		Name:        "observers",
		Help:        "Number of active subscriptions on the watched container",
		ConstLabels: mergeLabels(m.config.ConstLabels, prometheus.Labels{"container": name}),
	}, func() float64 {
		return float64(c.Observers())
	})

	return c.Observe(func(T, bool) {
		emissions.Inc()
	})
}

// mergeLabels combines constant labels with the per-container label.
func mergeLabels(base, extra prometheus.Labels) prometheus.Labels {
	merged := make(prometheus.Labels, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
