package monitor

import "github.com/LeonardoBeccarini/printer_monitor/internal/model"

// StateMachine turns temperatures into a PrinterStatus and edge-triggered
// alerts. Each latch fires once per crossing and is re-armed only by the
// complementary crossing. Not safe for concurrent use; the scheduler owns it.
type StateMachine struct {
	belowReady bool
	aboveReady bool
	aboveHigh  bool
	status     model.PrinterStatus
}

func NewStateMachine() *StateMachine {
	return &StateMachine{status: model.StatusNotReady}
}

// Status returns the current status.
func (m *StateMachine) Status() model.PrinterStatus {
	return m.status
}

// Evaluate applies the low, ready and high edge rules in that order. The
// last rule that fires decides the status. Inverted thresholds are not
// rejected; they only make the event order unintuitive.
func (m *StateMachine) Evaluate(temperature float64, th model.Thresholds) (model.PrinterStatus, []model.AlertEvent) {
	var events []model.AlertEvent

	// low edge
	if temperature < th.Ready && !m.belowReady {
		m.belowReady = true
		m.status = model.StatusNotReady
		events = append(events, model.AlertEvent{Kind: model.AlertTemperatureLow, Temperature: temperature, Threshold: th.Ready})
	} else if temperature >= th.Ready && m.belowReady {
		m.belowReady = false
	}

	// ready edge; aboveHigh lets READY be announced again after cooling from TOO_HOT
	if temperature >= th.Ready && temperature < th.High && (!m.aboveReady || m.aboveHigh) {
		m.aboveReady = true
		m.status = model.StatusReady
		events = append(events, model.AlertEvent{Kind: model.AlertReadyToPrint, Temperature: temperature, Threshold: th.Ready})
	} else if temperature < th.Ready && m.aboveReady {
		m.aboveReady = false
	}

	// high edge
	if temperature >= th.High && !m.aboveHigh {
		m.aboveHigh = true
		m.status = model.StatusTooHot
		events = append(events, model.AlertEvent{Kind: model.AlertTemperatureHigh, Temperature: temperature, Threshold: th.High})
	} else if temperature < th.High && m.aboveHigh {
		m.aboveHigh = false
	}

	return m.status, events
}
