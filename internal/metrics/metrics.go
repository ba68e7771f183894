package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "staybook"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	availabilityChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_checks_total",
			Help:      "Availability checks by result (available or the conflict reason).",
		},
		[]string{"result"},
	)

	reservationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Reservations created by initial status.",
		},
		[]string{"status"},
	)

	paymentEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_events_total",
			Help:      "Payment events by kind and reconciliation outcome.",
		},
		[]string{"kind", "outcome"},
	)

	compensations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compensations_total",
			Help:      "Reservations cancelled after payment and flagged for refund.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, availabilityChecks, reservationsCreated, paymentEvents, compensations)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncAvailability records "available" or the conflict reason.
func IncAvailability(result string) {
	availabilityChecks.WithLabelValues(result).Inc()
}

func IncReservations(status string, n int) {
	reservationsCreated.WithLabelValues(status).Add(float64(n))
}

func IncPaymentEvent(kind, outcome string) {
	paymentEvents.WithLabelValues(kind, outcome).Inc()
}

func AddCompensations(n int) {
	compensations.Add(float64(n))
}
