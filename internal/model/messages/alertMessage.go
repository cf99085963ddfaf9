package messages

import "github.com/LeonardoBeccarini/printer_monitor/internal/model"

// AlertMessage is published on the alert bus under the alert kind topic.
type AlertMessage struct {
	Temperature float64 `json:"temperature"`
	Threshold   float64 `json:"threshold"`
}

func FromAlert(ev model.AlertEvent) AlertMessage {
	return AlertMessage{Temperature: round2(ev.Temperature), Threshold: round2(ev.Threshold)}
}
