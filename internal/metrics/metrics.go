package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters exposed on /metrics.
type Metrics struct {
	// BookingsCreatedTotal counts successful booking inserts by kind
	// (user, admin, block).
	BookingsCreatedTotal *prometheus.CounterVec

	// BookingConflictsTotal counts rejected booking attempts by reason.
	BookingConflictsTotal *prometheus.CounterVec

	// BookingsCancelledTotal counts cancellations.
	BookingsCancelledTotal prometheus.Counter

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal *prometheus.CounterVec
}

// New creates and registers the application metrics.
func New(namespace string) *Metrics {
	return &Metrics{
		BookingsCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_created_total",
				Help:      "Total number of bookings created",
			},
			[]string{"kind"},
		),

		BookingConflictsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "booking_conflicts_total",
				Help:      "Total number of rejected booking attempts",
			},
			[]string{"reason"},
		),

		BookingsCancelledTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_cancelled_total",
				Help:      "Total number of bookings cancelled",
			},
		),

		LoginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total number of login attempts",
			},
			[]string{"outcome"},
		),
	}
}
