package toast

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instrumentation for a Context. All
// record methods are nil-safe so an uninstrumented Context pays only a
// nil check.
type Metrics struct {
	shown     *prometheus.CounterVec
	dismissed prometheus.Counter
	queued    prometheus.Counter
	replayed  prometheus.Counter
	updated   prometheus.Counter
	active    *prometheus.GaugeVec
}

// MetricsConfig configures metrics registration.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "toastify").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// NewMetrics registers and returns the notification metrics.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "toastify"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		shown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "shown_total",
			Help:        "Notifications dispatched to a mounted surface.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"type"}),
		dismissed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "dismissed_total",
			Help:        "Dismiss requests emitted to surfaces.",
			ConstLabels: cfg.ConstLabels,
		}),
		queued: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "queued_total",
			Help:        "Dispatches buffered while no surface was mounted.",
			ConstLabels: cfg.ConstLabels,
		}),
		replayed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "replayed_total",
			Help:        "Buffered dispatches replayed on first surface mount.",
			ConstLabels: cfg.ConstLabels,
		}),
		updated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "updates_total",
			Help:        "Update operations applied to live records.",
			ConstLabels: cfg.ConstLabels,
		}),
		active: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "active",
			Help:        "Active notifications per surface.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"container"}),
	}
}

func (m *Metrics) recordShown(t Type) {
	if m == nil {
		return
	}
	m.shown.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) recordDismissed() {
	if m == nil {
		return
	}
	m.dismissed.Inc()
}

func (m *Metrics) recordQueued() {
	if m == nil {
		return
	}
	m.queued.Inc()
}

func (m *Metrics) recordReplayed(n int) {
	if m == nil {
		return
	}
	m.replayed.Add(float64(n))
}

func (m *Metrics) recordUpdated() {
	if m == nil {
		return
	}
	m.updated.Inc()
}

func (m *Metrics) setActive(container string, count int) {
	if m == nil {
		return
	}
	m.active.WithLabelValues(container).Set(float64(count))
}
