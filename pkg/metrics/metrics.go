// Package metrics holds the Prometheus collectors of the monitor. All
// methods are safe on a nil *Metrics so components can run without them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "printer_monitor"

// Notification outcomes.
const (
	NotificationEnqueued  = "enqueued"
	NotificationDropped   = "dropped"
	NotificationDelivered = "delivered"
	NotificationFailed    = "failed"
	NotificationSkipped   = "skipped"
)

type Metrics struct {
	temperature   prometheus.Gauge
	humidity      prometheus.Gauge
	status        prometheus.Gauge
	subscribers   prometheus.Gauge
	readings      prometheus.Counter
	readFailures  prometheus.Counter
	alerts        *prometheus.CounterVec
	notifications *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		temperature: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "temperature_celsius",
			Help: "Last valid temperature reading.",
		}),
		humidity: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "humidity_percent",
			Help: "Last valid humidity reading, when the sensor provides it.",
		}),
		status: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "printer_status",
			Help: "Printer status: 0 not ready, 1 ready, 2 too hot.",
		}),
		subscribers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "live_subscribers",
			Help: "Clients currently subscribed to the live sensor topic.",
		}),
		readings: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "readings_total",
			Help: "Successful sensor reads.",
		}),
		readFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "read_failures_total",
			Help: "Failed sensor reads.",
		}),
		alerts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "alerts_total",
			Help: "Alert events by kind.",
		}, []string{"kind"}),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_total",
			Help: "Notification requests by outcome.",
		}, []string{"result"}),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) Reading(temperature float64, humidity float64, hasHumidity bool) {
	if m == nil {
		return
	}
	m.readings.Inc()
	m.temperature.Set(temperature)
	if hasHumidity {
		m.humidity.Set(humidity)
	}
}

func (m *Metrics) ReadFailure() {
	if m == nil {
		return
	}
	m.readFailures.Inc()
}

func (m *Metrics) Status(code int) {
	if m == nil {
		return
	}
	m.status.Set(float64(code))
}

func (m *Metrics) Alert(kind string) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(kind).Inc()
}

func (m *Metrics) Notification(result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(result).Inc()
}

func (m *Metrics) Subscribers(n int) {
	if m == nil {
		return
	}
	m.subscribers.Set(float64(n))
}
