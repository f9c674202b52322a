package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		bookingsCreatedTotal,
		bookingsApprovedTotal,
		bookingsUnpaid,
	)
}

var (
	bookingsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of draft bookings created.",
		},
	)

	bookingsApprovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_approved_total",
			Help: "Total number of bookings approved (is_paid transitions).",
		},
	)

	bookingsUnpaid = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookings_unpaid",
			Help: "Current number of unpaid, non-deleted bookings.",
		},
	)
)

func IncBookingCreated()      { bookingsCreatedTotal.Inc() }
func IncBookingApproved()     { bookingsApprovedTotal.Inc() }
func SetBookingsUnpaid(n int) { bookingsUnpaid.Set(float64(n)) }
