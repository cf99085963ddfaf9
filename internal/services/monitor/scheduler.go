package monitor

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/internal/model/messages"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/metrics"
)

const (
	DefaultSampleInterval = 2000 * time.Millisecond

	// SensorTopic is the live feed topic suffix watched for subscribers.
	SensorTopic = "sensor"
)

type Deps struct {
	Sensor       Sensor
	Config       Config
	Bus          AlertBus
	Notifier     Notifier
	Connectivity Connectivity
	Subscribers  Subscribers
	Display      Display
	Logger       log.Logger
	Metrics      *metrics.Metrics
}

// Scheduler runs the sampling loop. Sample and Heartbeat are exported so
// they can be driven without a ticker; they must not be called concurrently.
type Scheduler struct {
	Deps
	interval time.Duration
	machine  *StateMachine
	now      func() time.Time

	lastHeartbeat time.Time

	// mu guards the snapshot read by the HTTP side.
	mu        sync.RWMutex
	last      model.Reading
	status    model.PrinterStatus
	lastValid bool
	lastErr   time.Time
}

func NewScheduler(deps Deps, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	if deps.Logger == nil {
		deps.Logger = log.Nop()
	}
	return &Scheduler{
		Deps:     deps,
		interval: interval,
		machine:  NewStateMachine(),
		now:      time.Now,
	}
}

// Run samples every interval until ctx is done. Each tick runs to
// completion before the next one starts.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.lastHeartbeat = s.now()
	s.Logger.Infof("scheduler started: sample every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.Logger.Infof("scheduler stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Scheduler) tick() {
	s.Sample()

	now := s.now()
	if every := s.Config.HeartbeatInterval(); every > 0 && now.Sub(s.lastHeartbeat) >= every {
		s.lastHeartbeat = now
		s.Heartbeat()
	}
}

// Sample reads the sensor once. A failed read is reported and leaves the
// latches untouched.
func (s *Scheduler) Sample() {
	r, err := s.Sensor.Read()
	if err != nil {
		s.mu.Lock()
		s.lastValid = false
		s.lastErr = s.now()
		s.mu.Unlock()

		s.Metrics.ReadFailure()
		s.Logger.Warnf("sensor read failed: %v", err)
		s.Display.ShowError(messages.ReadFailed)
		s.publish(SensorTopic, messages.ReadError())
		return
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = s.now()
	}

	th := model.Thresholds{Ready: s.Config.ReadyThreshold(), High: s.Config.HighThreshold()}
	status, events := s.machine.Evaluate(r.Temperature, th)

	s.mu.Lock()
	s.last = r
	s.status = status
	s.lastValid = true
	s.mu.Unlock()

	s.Metrics.Reading(r.Temperature, r.Humidity, r.HasHumidity)
	s.Display.ShowReading(r, status)
	s.publish(SensorTopic, messages.FromReading(r, status))

	for _, ev := range events {
		s.Metrics.Alert(string(ev.Kind))
		s.Logger.Infof("alert %s: temperature %.2f threshold %.2f", ev.Kind, ev.Temperature, ev.Threshold)
		s.publish(string(ev.Kind), messages.FromAlert(ev))
		s.enqueue(model.NewNotificationRequest(ev.Temperature, ev.Kind.Status().Label(), s.now()))
	}
}

// Heartbeat enqueues a status notification unless there is no valid
// reading, the network is down, or a live consumer already watches the
// feed. It reports whether a request was enqueued.
func (s *Scheduler) Heartbeat() bool {
	s.mu.RLock()
	last, status, valid := s.last, s.status, s.lastValid
	s.mu.RUnlock()

	switch {
	case !valid:
		s.Logger.Debugf("heartbeat skipped: no valid reading")
		return false
	case !s.Connectivity.IsConnected():
		s.Logger.Debugf("heartbeat skipped: not connected")
		return false
	case s.Subscribers.HasSubscribers():
		s.Logger.Debugf("heartbeat skipped: live subscribers present")
		return false
	}
	return s.enqueue(model.NewNotificationRequest(last.Temperature, status.Label(), s.now()))
}

// Snapshot returns the last valid reading, the current status and whether
// the most recent read succeeded.
func (s *Scheduler) Snapshot() (model.Reading, model.PrinterStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.status, s.lastValid
}

// LastErrorAge returns how long ago the sensor last failed, or a large
// duration if it never did.
func (s *Scheduler) LastErrorAge() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastErr.IsZero() {
		return 99999 * time.Hour
	}
	return s.now().Sub(s.lastErr)
}

func (s *Scheduler) enqueue(req model.NotificationRequest) bool {
	if !s.Notifier.Enqueue(req) {
		s.Logger.Warnf("notification queue full, dropped %q at %.2f", req.StatusLabel, req.Temperature)
		return false
	}
	return true
}

func (s *Scheduler) publish(topic string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		s.Logger.Errorf("marshal %s payload: %v", topic, err)
		return
	}
	s.Bus.Publish(topic, string(b))
}
