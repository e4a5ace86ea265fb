package metrics

import (
	"rewatch/internal/core/domain/metrics"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements the metrics recorder with client_golang collectors.
type Prometheus struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	fired      *prometheus.CounterVec
	collected  prometheus.Counter
}

func NewPrometheus(registerer prometheus.Registerer) *Prometheus {
	factory := promauto.With(registerer)
	return &Prometheus{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rewatch",
				Name:      "operations_total",
				Help:      "Operations run, by name and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		durations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "rewatch",
				Name:      "operation_duration_seconds",
				Help:      "Operation latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		fired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rewatch",
				Name:      "reminders_fired_total",
				Help:      "Reminder fires, by whether a notification was displayed.",
			},
			[]string{"displayed"},
		),
		collected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rewatch",
			Name:      "reminders_collected_total",
			Help:      "Reminders removed by the periodic cleanup.",
		}),
	}
}

func (p *Prometheus) ObserveOperation(operation string, outcome metrics.Outcome, elapsed time.Duration) {
	p.operations.WithLabelValues(operation, string(outcome)).Inc()
	p.durations.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (p *Prometheus) ReminderFired(displayed bool) {
	label := "false"
	if displayed {
		label = "true"
	}
	p.fired.WithLabelValues(label).Inc()
}

func (p *Prometheus) RemindersCollected(count int) {
	p.collected.Add(float64(count))
}
