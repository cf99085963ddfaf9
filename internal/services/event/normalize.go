package event

import (
	"encoding/json"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/internal/model/messages"
)

const alertMeasurement = "printer_alert"

// AlertRecord is an alert as stored in and read back from Influx.
type AlertRecord struct {
	Kind        model.AlertKind `json:"kind"`
	Temperature float64         `json:"temperature"`
	Threshold   float64         `json:"threshold"`
	Time        time.Time       `json:"time"`
}

func isAlertKind(topic string) bool {
	switch model.AlertKind(topic) {
	case model.AlertTemperatureLow, model.AlertReadyToPrint, model.AlertTemperatureHigh:
		return true
	}
	return false
}

// decodeAlert turns an alert bus message into a record stamped at.
func decodeAlert(topic, payload string, at time.Time) (AlertRecord, error) {
	var m messages.AlertMessage
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return AlertRecord{}, fmt.Errorf("decode %s alert: %w", topic, err)
	}
	return AlertRecord{
		Kind:        model.AlertKind(topic),
		Temperature: m.Temperature,
		Threshold:   m.Threshold,
		Time:        at,
	}, nil
}

// AlertToPoint maps a record to a printer_alert point tagged by kind.
func AlertToPoint(rec AlertRecord) *write.Point {
	return influxdb2.NewPoint(alertMeasurement,
		map[string]string{"kind": string(rec.Kind)},
		map[string]interface{}{
			"temperature": rec.Temperature,
			"threshold":   rec.Threshold,
		},
		rec.Time)
}
