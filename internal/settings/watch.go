package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the file whenever it is written or replaced, until ctx is
// done. The directory is watched so that editors replacing the file by
// rename are picked up.
func (s *Settings) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("settings watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	s.logger.Infof("watching settings file %s", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := s.reload(); err != nil {
				s.logger.Warnf("reload settings: %v", err)
				continue
			}
			v := s.Snapshot()
			s.logger.Infof("settings reloaded: ready=%.2f high=%.2f heartbeat=%dms email=%t",
				v.ReadyThreshold, v.HighThreshold, v.HeartbeatInterval, v.EmailEnabled)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warnf("settings watcher: %v", err)
		}
	}
}

// reload keeps the current values when the file is empty or does not
// parse, since a writer may still be in the middle of replacing it.
func (s *Settings) reload() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read settings %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return fmt.Errorf("settings %s is empty", s.path)
	}
	v := Defaults()
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("decode settings %s: %w", s.path, err)
	}
	s.set(v)
	return nil
}
