package event

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/internal/settings"
)

// SnapshotSource exposes the last reading of the scheduler.
type SnapshotSource interface {
	Snapshot() (model.Reading, model.PrinterStatus, bool)
}

// SettingsStore reads and replaces the runtime settings.
type SettingsStore interface {
	Snapshot() settings.Values
	Update(v settings.Values) error
}

type readingResponse struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Status      string   `json:"status"`
	Valid       bool     `json:"valid"`
	Timestamp   string   `json:"timestamp,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NewReadingsHandler serves GET /readings with the last reading and the
// printer status label. Valid is false when the latest read failed.
func NewReadingsHandler(src SnapshotSource) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		reading, status, valid := src.Snapshot()
		resp := readingResponse{Status: status.Label(), Valid: valid}
		if !reading.Timestamp.IsZero() {
			t := reading.Temperature
			resp.Temperature = &t
			resp.Timestamp = reading.Timestamp.UTC().Format(time.RFC3339)
			if reading.HasHumidity {
				h := reading.Humidity
				resp.Humidity = &h
			}
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

// NewSettingsHandler serves GET and PUT /api/settings. PUT accepts a partial
// document; missing keys keep their current value.
func NewSettingsHandler(store SettingsStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, store.Snapshot())
		case http.MethodPut:
			v := store.Snapshot()
			dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&v); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			if v.HeartbeatInterval < 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "heartbeat_interval_ms must not be negative"})
				return
			}
			if err := store.Update(v); err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, v)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}
