package event

import (
	"sync"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

// PointWriter is the part of the Influx api.WriteAPI the writer needs.
type PointWriter interface {
	WritePoint(point *write.Point)
	Errors() <-chan error
}

// Writer wraps the non-blocking Influx write API and remembers when the
// last asynchronous write error happened, for /healthz and /readyz.
type Writer struct {
	api    PointWriter
	logger log.Logger
	now    func() time.Time

	mu      sync.RWMutex
	lastErr time.Time
	counts  map[string]int64
}

func NewWriter(w PointWriter, logger log.Logger) *Writer {
	ww := &Writer{
		api:    w,
		logger: logger,
		now:    time.Now,
		counts: make(map[string]int64),
	}
	go ww.drainErrors()
	return ww
}

func (w *Writer) drainErrors() {
	for err := range w.api.Errors() {
		if err == nil {
			continue
		}
		w.mu.Lock()
		w.lastErr = w.now()
		w.mu.Unlock()
		w.logger.Warnf("influx write error: %v", err)
	}
}

// Write queues p and counts it under kind.
func (w *Writer) Write(kind string, p *write.Point) {
	w.api.WritePoint(p)
	w.mu.Lock()
	w.counts[kind]++
	w.mu.Unlock()
}

// LastErrorAge returns how long ago a write last failed; a nil writer or
// one that never failed reports a very large age.
func (w *Writer) LastErrorAge() time.Duration {
	if w == nil {
		return 99999 * time.Hour
	}
	w.mu.RLock()
	t := w.lastErr
	w.mu.RUnlock()
	if t.IsZero() {
		return 99999 * time.Hour
	}
	return w.now().Sub(t)
}

func (w *Writer) Count(kind string) int64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.counts[kind]
}
