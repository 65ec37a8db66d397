// Package metrics holds the Prometheus instruments for the scheduling engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_reservations_created_total",
		Help: "Reservation holds successfully placed.",
	})

	ReservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_reservation_conflicts_total",
		Help: "Booking attempts rejected because the slot was taken.",
	})

	HoldsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_holds_expired_total",
		Help: "Reservation holds reaped by the expiry sweeper.",
	})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduling_status_transitions_total",
		Help: "Appointment status transitions by target status.",
	}, []string{"to"})

	SlotQueries = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduling_slot_query_duration_seconds",
		Help:    "Availability computation latency including snapshot load.",
		Buckets: prometheus.DefBuckets,
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
