package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		groupsOpenedTotal,
		groupsByFullness,
		allocationLatencyMs,
	)
}

var (
	groupsOpenedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "groups_opened_total",
			Help: "Total number of subscription groups opened by the allocator.",
		},
	)

	groupsByFullness = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "groups_total",
			Help: "Current number of groups by fullness.",
		},
		[]string{"state"}, // 'open', 'full'
	)

	allocationLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocation_latency_ms",
			Help:    "Group allocation latency distribution in milliseconds.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200, 400, 800},
		},
	)
)

func IncGroupOpened() { groupsOpenedTotal.Inc() }

func SetGroupsByFullness(open, full int) {
	groupsByFullness.WithLabelValues("open").Set(float64(open))
	groupsByFullness.WithLabelValues("full").Set(float64(full))
}

func ObserveAllocation(latencyMs float64) {
	allocationLatencyMs.Observe(latencyMs)
}
