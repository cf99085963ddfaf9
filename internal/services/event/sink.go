// Package event records alert events in InfluxDB and serves the HTTP
// surface of the monitor.
package event

import (
	"time"

	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

// AlertSink is an alert bus that records alert events in Influx. Other
// topics, such as the live sensor feed, are ignored.
type AlertSink struct {
	writer *Writer
	logger log.Logger
	now    func() time.Time
}

func NewAlertSink(w *Writer, logger log.Logger) *AlertSink {
	return &AlertSink{writer: w, logger: logger, now: time.Now}
}

func (s *AlertSink) Publish(topic, payload string) {
	if !isAlertKind(topic) {
		return
	}
	rec, err := decodeAlert(topic, payload, s.now().UTC())
	if err != nil {
		s.logger.Warnf("alert sink: %v", err)
		return
	}
	s.writer.Write(string(rec.Kind), AlertToPoint(rec))
}
