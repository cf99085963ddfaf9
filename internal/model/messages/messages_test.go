package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
)

func TestFromReadingOmitsHumidityWithoutCapability(t *testing.T) {
	b, err := json.Marshal(FromReading(model.Reading{Temperature: 21.456}, model.StatusReady))
	require.NoError(t, err)
	assert.JSONEq(t, `{"temperature":21.46,"status":"READY"}`, string(b))
}

func TestFromReadingWithHumidity(t *testing.T) {
	r := model.Reading{Temperature: 19.5, Humidity: 48.123, HasHumidity: true}
	b, err := json.Marshal(FromReading(r, model.StatusNotReady))
	require.NoError(t, err)
	assert.JSONEq(t, `{"temperature":19.5,"humidity":48.12,"status":"NOT_READY"}`, string(b))
}

func TestReadError(t *testing.T) {
	b, err := json.Marshal(ReadError())
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Sensor read failed"}`, string(b))
}

func TestFromAlert(t *testing.T) {
	m := FromAlert(model.AlertEvent{Kind: model.AlertTemperatureHigh, Temperature: 35.004, Threshold: 30})
	assert.Equal(t, AlertMessage{Temperature: 35, Threshold: 30}, m)
}
