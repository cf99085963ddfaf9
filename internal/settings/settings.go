// Package settings holds the runtime-mutable monitor settings backed by a
// JSON file. Getters are safe for concurrent use and are polled every tick.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

const DefaultHeartbeatInterval = 15 * time.Minute

// Values is the on-disk document.
type Values struct {
	ReadyThreshold    float64 `json:"ready_to_print_threshold"`
	HighThreshold     float64 `json:"temperature_high_threshold"`
	HeartbeatInterval int64   `json:"heartbeat_interval_ms"`
	EmailEnabled      bool    `json:"email_enabled"`
}

func Defaults() Values {
	return Values{
		ReadyThreshold:    model.DefaultReadyThreshold,
		HighThreshold:     model.DefaultHighThreshold,
		HeartbeatInterval: DefaultHeartbeatInterval.Milliseconds(),
		EmailEnabled:      true,
	}
}

type Settings struct {
	path   string
	logger log.Logger

	mu sync.RWMutex
	v  Values
}

// New returns settings with default values. Call Load to read the file.
func New(path string, logger log.Logger) *Settings {
	if logger == nil {
		logger = log.Nop()
	}
	return &Settings{path: path, logger: logger, v: Defaults()}
}

// Load reads the file. A missing file is created with the defaults; an
// unreadable document is replaced by the defaults and rewritten.
func (s *Settings) Load() error {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Infof("settings file %s not found, writing defaults", s.path)
		s.set(Defaults())
		return s.Save()
	}
	if err != nil {
		return fmt.Errorf("read settings %s: %w", s.path, err)
	}

	v := Defaults()
	if err := json.Unmarshal(b, &v); err != nil {
		s.logger.Warnf("settings file %s is corrupt, restoring defaults: %v", s.path, err)
		s.set(Defaults())
		return s.Save()
	}
	s.set(v)
	return nil
}

// Save writes the current values atomically.
func (s *Settings) Save() error {
	b, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Update replaces the values and persists them.
func (s *Settings) Update(v Values) error {
	s.set(v)
	return s.Save()
}

func (s *Settings) set(v Values) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

func (s *Settings) Snapshot() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

func (s *Settings) ReadyThreshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.ReadyThreshold
}

func (s *Settings) HighThreshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.HighThreshold
}

// HeartbeatInterval returns the heartbeat period; zero or less disables it.
func (s *Settings) HeartbeatInterval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(s.v.HeartbeatInterval) * time.Millisecond
}

func (s *Settings) EmailEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.EmailEnabled
}
