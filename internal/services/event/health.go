package event

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BrokerState is satisfied by mqtt.Client.
type BrokerState interface {
	IsConnectionOpen() bool
}

// ErrorAger reports how long ago a component last failed.
type ErrorAger interface {
	LastErrorAge() time.Duration
}

// Breaker is satisfied by the notifier's circuit breaker.
type Breaker interface {
	State() gobreaker.State
}

type healthHandler struct {
	mqtt    BrokerState
	sensor  ErrorAger
	writer  *Writer
	breaker Breaker
}

// NewHealthHandler serves /healthz. Status is "ok" when the broker is
// connected, neither the sensor nor the alert sink failed in the last 30
// seconds and the notification breaker is not open; "degraded" when only
// the broker is up; "down" otherwise. breaker may be nil.
func NewHealthHandler(m BrokerState, sensor ErrorAger, w *Writer, breaker Breaker) http.Handler {
	return &healthHandler{mqtt: m, sensor: sensor, writer: w, breaker: breaker}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	type status struct {
		Status           string  `json:"status"`
		MQTTConnected    bool    `json:"mqtt_connected"`
		LastSensorErrorS float64 `json:"last_sensor_error_age_sec"`
		LastWriteErrorS  float64 `json:"last_write_error_age_sec"`
		NotifierBreaker  string  `json:"notifier_breaker,omitempty"`
	}
	sensorAge := h.sensor.LastErrorAge()
	writeAge := h.writer.LastErrorAge()
	st := status{
		MQTTConnected:    h.mqtt != nil && h.mqtt.IsConnectionOpen(),
		LastSensorErrorS: sensorAge.Seconds(),
		LastWriteErrorS:  writeAge.Seconds(),
	}

	breakerOpen := false
	if h.breaker != nil {
		state := h.breaker.State()
		st.NotifierBreaker = state.String()
		breakerOpen = state == gobreaker.StateOpen
	}

	switch {
	case st.MQTTConnected && sensorAge > 30*time.Second && writeAge > 30*time.Second && !breakerOpen:
		st.Status = "ok"
	case st.MQTTConnected:
		st.Status = "degraded"
	default:
		st.Status = "down"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

type readyHandler struct {
	mqtt     BrokerState
	sensor   ErrorAger
	minError time.Duration
}

// NewReadyHandler serves /readyz: 200 only when the broker is connected
// and the sensor has not failed within minOkErrorAge.
func NewReadyHandler(m BrokerState, sensor ErrorAger, minOkErrorAge time.Duration) http.Handler {
	return &readyHandler{mqtt: m, sensor: sensor, minError: minOkErrorAge}
}

func (h *readyHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	ready := h.mqtt != nil && h.mqtt.IsConnectionOpen() && h.sensor.LastErrorAge() > h.minError
	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(struct {
		Ready bool `json:"ready"`
	}{Ready: ready})
}
