package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/metrics"
)

type servingRecorder struct{ states []bool }

func (s *servingRecorder) SetServing(ok bool) { s.states = append(s.states, ok) }

func TestLogDisplayTracksSignificantChanges(t *testing.T) {
	d := NewLogDisplay(log.Nop())

	d.ShowReading(model.Reading{Temperature: 21.0, Humidity: 40, HasHumidity: true}, model.StatusReady)
	assert.Equal(t, 21.0, d.lastTemp)
	assert.Equal(t, 40.0, d.lastHumidity)

	d.ShowReading(model.Reading{Temperature: 21.05, Humidity: 40.5, HasHumidity: true}, model.StatusReady)
	assert.Equal(t, 21.0, d.lastTemp, "below 0.1 step")
	assert.Equal(t, 40.0, d.lastHumidity, "below 1.0 step")

	d.ShowReading(model.Reading{Temperature: 21.2, Humidity: 55}, model.StatusReady)
	assert.Equal(t, 21.2, d.lastTemp)
	assert.Equal(t, 40.0, d.lastHumidity, "sensor without humidity leaves it alone")
}

func TestMetricsDisplaySetsHealth(t *testing.T) {
	rec := &servingRecorder{}
	d := NewMetricsDisplay(metrics.New(), rec)

	d.ShowReading(model.Reading{Temperature: 20}, model.StatusReady)
	d.ShowError("Sensor read failed")

	assert.Equal(t, []bool{true, false}, rec.states)
}

func TestMultiDisplayAndBus(t *testing.T) {
	a, b := &recordingDisplay{}, &recordingDisplay{}
	MultiDisplay{a, b}.ShowError("boom")
	assert.Equal(t, []string{"boom"}, a.errors)
	assert.Equal(t, []string{"boom"}, b.errors)

	x, y := &recordingBus{}, &recordingBus{}
	MultiBus{x, y}.Publish("ready_to_print", "{}")
	assert.Equal(t, []string{"ready_to_print"}, x.topics())
	assert.Equal(t, []string{"ready_to_print"}, y.topics())
}
