package sensor

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/internal/model/messages"
)

var (
	ErrNoData = errors.New("sensor: no reading received yet")
	ErrStale  = errors.New("sensor: last reading is stale")
)

// Remote serves the last reading pushed by a probe over MQTT.
type Remote struct {
	kind  Kind
	stale time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	last    model.Reading
	have    bool
	failure string
}

func NewRemote(kind Kind, stale time.Duration) *Remote {
	if stale <= 0 {
		stale = 10 * time.Second
	}
	return &Remote{kind: kind, stale: stale, now: time.Now}
}

// Handle is an mqttbus.Handler.
func (r *Remote) Handle(_ string, msg mqtt.Message) error {
	return r.apply(msg.Payload())
}

func (r *Remote) apply(payload []byte) error {
	var m messages.SensorData
	if err := json.Unmarshal(payload, &m); err != nil {
		return fmt.Errorf("invalid probe payload: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m.Error != "" || m.Temperature == nil {
		r.failure = m.Error
		if r.failure == "" {
			r.failure = "missing temperature"
		}
		return nil
	}

	reading := model.Reading{Temperature: *m.Temperature, Timestamp: r.now().UTC()}
	if m.Humidity != nil && r.kind.HasHumidity() {
		reading.Humidity = *m.Humidity
		reading.HasHumidity = true
	}
	r.last = reading
	r.have = true
	r.failure = ""
	return nil
}

// Read returns the last reading. It fails when none arrived yet, when the
// probe reported an error, or when the reading is older than the stale window.
func (r *Remote) Read() (model.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failure != "" {
		return model.Reading{}, fmt.Errorf("probe: %s", r.failure)
	}
	if !r.have {
		return model.Reading{}, ErrNoData
	}
	if age := r.now().Sub(r.last.Timestamp); age > r.stale {
		return model.Reading{}, fmt.Errorf("%w (%s old)", ErrStale, age.Round(time.Second))
	}
	return r.last, nil
}
