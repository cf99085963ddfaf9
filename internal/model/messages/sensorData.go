package messages

import (
	"math"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
)

// SensorData is the live feed payload, also accepted from remote probes.
// Humidity is omitted for sensors without it; Error replaces the reading
// when the sensor could not be read.
type SensorData struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Status      string   `json:"status,omitempty"`
	Error       string   `json:"error,omitempty"`
}

const ReadFailed = "Sensor read failed"

func FromReading(r model.Reading, status model.PrinterStatus) SensorData {
	t := round2(r.Temperature)
	sd := SensorData{Temperature: &t, Status: status.String()}
	if r.HasHumidity {
		h := round2(r.Humidity)
		sd.Humidity = &h
	}
	return sd
}

func ReadError() SensorData {
	return SensorData{Error: ReadFailed}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
