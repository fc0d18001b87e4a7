package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	// HTTPRequestsTotal counts handled requests by route and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration is the request latency by route.
	HTTPRequestDuration *prometheus.HistogramVec

	// BookingsTotal counts booking attempts by outcome.
	BookingsTotal *prometheus.CounterVec

	// SlotQueryDuration is the time to load a day and resolve its slots.
	SlotQueryDuration prometheus.Histogram

	// DashboardClients is the number of connected dashboard sockets.
	DashboardClients prometheus.Gauge

	// HousekeepingRemoved counts rows removed by cleanup jobs.
	HousekeepingRemoved *prometheus.CounterVec
}

const (
	BookingCreated     = "created"
	BookingConflict    = "conflict"
	BookingRejected    = "rejected"
	BookingFailed      = "failed"
	JobBlockedSlots    = "blocked_slots"
	JobExpiredSessions = "sessions"
)

// NewMetrics registers the collectors on reg. A nil reg uses the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		BookingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_total",
				Help:      "Booking attempts by outcome",
			},
			[]string{"result"},
		),

		SlotQueryDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "slot_query_duration_seconds",
				Help:      "Time to load a day and resolve available slots",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
			},
		),

		DashboardClients: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dashboard_clients",
				Help:      "Connected dashboard websocket clients",
			},
		),

		HousekeepingRemoved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "housekeeping_removed_total",
				Help:      "Rows removed by housekeeping jobs",
			},
			[]string{"job"},
		),
	}
}
