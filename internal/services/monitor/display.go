package monitor

import (
	"math"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/metrics"
)

const (
	temperatureStep = 0.1
	humidityStep    = 1.0
)

// LogDisplay writes readings to the log, but only when they moved enough
// to matter: 0.1 °C for temperature, 1 % for humidity.
type LogDisplay struct {
	logger       log.Logger
	lastTemp     float64
	lastHumidity float64
	lastStatus   model.PrinterStatus
	shown        bool
}

func NewLogDisplay(logger log.Logger) *LogDisplay {
	return &LogDisplay{logger: logger, lastTemp: -999, lastHumidity: -999}
}

func (d *LogDisplay) ShowReading(r model.Reading, status model.PrinterStatus) {
	if math.Abs(r.Temperature-d.lastTemp) >= temperatureStep {
		d.lastTemp = r.Temperature
		d.logger.Infof("temperature %.1fC", r.Temperature)
	}
	if r.HasHumidity && math.Abs(r.Humidity-d.lastHumidity) >= humidityStep {
		d.lastHumidity = r.Humidity
		d.logger.Infof("humidity %.1f%%", r.Humidity)
	}
	if !d.shown || status != d.lastStatus {
		d.shown = true
		d.lastStatus = status
		d.logger.Infof("printer status %s", status.Label())
	}
}

func (d *LogDisplay) ShowError(msg string) {
	d.logger.Errorf("display error: %s", msg)
}

// ServingSetter is implemented by the health reporter.
type ServingSetter interface {
	SetServing(ok bool)
}

// MetricsDisplay mirrors readings into gauges and the health status.
type MetricsDisplay struct {
	metrics *metrics.Metrics
	health  ServingSetter
}

func NewMetricsDisplay(m *metrics.Metrics, health ServingSetter) *MetricsDisplay {
	return &MetricsDisplay{metrics: m, health: health}
}

func (d *MetricsDisplay) ShowReading(_ model.Reading, status model.PrinterStatus) {
	d.metrics.Status(int(status))
	if d.health != nil {
		d.health.SetServing(true)
	}
}

func (d *MetricsDisplay) ShowError(string) {
	if d.health != nil {
		d.health.SetServing(false)
	}
}
