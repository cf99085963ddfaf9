package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Reading(21, 40, true)
		m.ReadFailure()
		m.Status(1)
		m.Alert("ready_to_print")
		m.Notification(NotificationDropped)
		m.Subscribers(3)
	})
}

func TestCounters(t *testing.T) {
	m := New()
	m.Reading(21.5, 0, false)
	m.Reading(22.5, 45, true)
	m.ReadFailure()
	m.Alert("temperature_high")
	m.Notification(NotificationEnqueued)
	m.Notification(NotificationEnqueued)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.readings))
	assert.Equal(t, 22.5, testutil.ToFloat64(m.temperature))
	assert.Equal(t, 45.0, testutil.ToFloat64(m.humidity))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.readFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.alerts.WithLabelValues("temperature_high")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.notifications.WithLabelValues(NotificationEnqueued)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Status(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "printer_monitor_printer_status 2")
}
