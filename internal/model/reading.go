package model

import "time"

// Reading is one sample of the printer enclosure. Humidity is only
// meaningful when HasHumidity is set, which depends on the sensor fitted.
type Reading struct {
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity,omitempty"`
	HasHumidity bool      `json:"-"`
	Timestamp   time.Time `json:"timestamp"`
}

// Thresholds in degrees Celsius. Ready is expected to be below High but
// nothing enforces it.
type Thresholds struct {
	Ready float64 `json:"ready_to_print_threshold"`
	High  float64 `json:"temperature_high_threshold"`
}

const (
	DefaultReadyThreshold = 20.0
	DefaultHighThreshold  = 30.0
)
