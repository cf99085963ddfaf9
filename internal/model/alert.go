package model

// AlertKind names the threshold edge that fired. The value doubles as the
// alert bus topic.
type AlertKind string

const (
	AlertTemperatureLow  AlertKind = "temperature_low"
	AlertReadyToPrint    AlertKind = "ready_to_print"
	AlertTemperatureHigh AlertKind = "temperature_high"
)

// Status is the printer status an edge of this kind moves to.
func (k AlertKind) Status() PrinterStatus {
	switch k {
	case AlertReadyToPrint:
		return StatusReady
	case AlertTemperatureHigh:
		return StatusTooHot
	default:
		return StatusNotReady
	}
}

// AlertEvent is emitted once per threshold crossing.
type AlertEvent struct {
	Kind        AlertKind `json:"kind"`
	Temperature float64   `json:"temperature"`
	Threshold   float64   `json:"threshold"`
}
