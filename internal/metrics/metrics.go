package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the notifier's Prometheus collectors.
type Metrics struct {
	Classifications *prometheus.CounterVec
	Notifications   *prometheus.CounterVec
	Duration        *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_notifier_classifications_total",
				Help: "Events classified, by category and by whether the keyword fallback was used",
			},
			[]string{"category", "path"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_notifier_notifications_total",
				Help: "Notification attempts by category, transport and outcome",
			},
			[]string{"category", "transport", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_notifier_invocation_duration_seconds",
				Help:    "End to end invocation duration",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.Classifications, m.Notifications, m.Duration)
	return m
}
