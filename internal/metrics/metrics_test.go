package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("barbershop", reg)

	m.BookingsTotal.WithLabelValues(BookingCreated).Inc()
	m.BookingsTotal.WithLabelValues(BookingConflict).Add(2)
	m.DashboardClients.Set(3)
	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/services", "200").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues(BookingCreated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues(BookingConflict)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DashboardClients))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "barbershop_bookings_total")
	assert.Contains(t, names, "barbershop_http_requests_total")
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics("a", prometheus.NewRegistry())
		NewMetrics("a", prometheus.NewRegistry())
	})
}
