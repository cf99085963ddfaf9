package sensor

import (
	"math/rand"
	"sync"
	"time"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
)

const (
	simStartTemperature = 8.0
	simStartHumidity    = 50.0
	simWarmTarget       = 20.0

	// humidity is reported on the first simHumidityReads of every simCycle reads
	simHumidityReads = 10
	simCycle         = 20
)

// Simulator mimics an enclosure warming up: the temperature climbs in
// small random steps until it reaches 20 °C and then wanders around it.
type Simulator struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	temperature float64
	humidity    float64
	stabilised  bool
	count       int
	now         func() time.Time
}

func NewSimulator(seed int64) *Simulator {
	return &Simulator{
		rnd:         rand.New(rand.NewSource(seed)),
		temperature: simStartTemperature,
		humidity:    simStartHumidity,
		now:         time.Now,
	}
}

// Read returns the current values and then advances the simulation.
func (s *Simulator) Read() (model.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := model.Reading{Temperature: s.temperature, Timestamp: s.now().UTC()}

	s.count++
	if s.count <= simHumidityReads {
		r.Humidity = s.humidity
		r.HasHumidity = true
	} else if s.count > simCycle {
		s.count = 0
	}

	if !s.stabilised && s.temperature < simWarmTarget {
		s.temperature += s.step(1, 50)
	} else {
		s.stabilised = true
	}
	if s.stabilised {
		s.temperature += s.step(-40, 40)
	}
	s.humidity += s.step(-50, 50)

	return r, nil
}

// step returns a value in [lo, hi) hundredths.
func (s *Simulator) step(lo, hi int) float64 {
	return float64(lo+s.rnd.Intn(hi-lo)) / 100
}
