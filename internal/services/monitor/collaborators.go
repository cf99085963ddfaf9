// Package monitor samples the enclosure temperature, classifies it and
// decides when notifications are sent.
package monitor

import (
	"time"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
)

// Sensor reads the enclosure.
type Sensor interface {
	Read() (model.Reading, error)
}

// Config is polled on every tick; values may change between ticks.
type Config interface {
	ReadyThreshold() float64
	HighThreshold() float64
	HeartbeatInterval() time.Duration
}

// AlertBus publishes real-time events. Publishing must not block for long
// and has no delivery guarantee.
type AlertBus interface {
	Publish(topic, payload string)
}

// Notifier accepts notification requests without blocking; false means
// the request was dropped.
type Notifier interface {
	Enqueue(req model.NotificationRequest) bool
}

type Connectivity interface {
	IsConnected() bool
}

// Subscribers tells whether a live consumer is watching the sensor feed.
type Subscribers interface {
	HasSubscribers() bool
}

// Display presents readings and errors. Calls must return promptly.
type Display interface {
	ShowReading(r model.Reading, status model.PrinterStatus)
	ShowError(msg string)
}

// MultiBus publishes to every bus in order.
type MultiBus []AlertBus

func (m MultiBus) Publish(topic, payload string) {
	for _, b := range m {
		b.Publish(topic, payload)
	}
}

// MultiDisplay forwards to every display in order.
type MultiDisplay []Display

func (m MultiDisplay) ShowReading(r model.Reading, status model.PrinterStatus) {
	for _, d := range m {
		d.ShowReading(r, status)
	}
}

func (m MultiDisplay) ShowError(msg string) {
	for _, d := range m {
		d.ShowError(msg)
	}
}

// ConnectivityFunc adapts a function to Connectivity.
type ConnectivityFunc func() bool

func (f ConnectivityFunc) IsConnected() bool { return f() }
