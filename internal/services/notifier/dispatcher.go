// Package notifier delivers status notifications off the sampling path.
// Requests go into a small bounded queue drained by a single worker; a full
// queue drops the request instead of blocking the caller.
package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/metrics"
)

const (
	DefaultCapacity    = 6
	DefaultSendTimeout = 30 * time.Second
)

// Sender delivers one notification synchronously.
type Sender interface {
	Send(ctx context.Context, req model.NotificationRequest) error
}

type Dispatcher struct {
	queue   chan model.NotificationRequest
	sender  Sender
	timeout time.Duration
	logger  log.Logger
	metrics *metrics.Metrics
}

func New(capacity int, sender Sender, logger log.Logger, m *metrics.Metrics) *Dispatcher {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Dispatcher{
		queue:   make(chan model.NotificationRequest, capacity),
		sender:  sender,
		timeout: DefaultSendTimeout,
		logger:  logger,
		metrics: m,
	}
}

// Enqueue never blocks. It returns false when the queue is full.
func (d *Dispatcher) Enqueue(req model.NotificationRequest) bool {
	select {
	case d.queue <- req:
		d.metrics.Notification(metrics.NotificationEnqueued)
		return true
	default:
		d.metrics.Notification(metrics.NotificationDropped)
		return false
	}
}

// Len returns the number of queued requests.
func (d *Dispatcher) Len() int {
	return len(d.queue)
}

// Run is the single delivery worker. Requests are sent in FIFO order; a
// failed delivery is logged and dropped. Run returns when ctx is done.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Infof("notification worker started (capacity %d)", cap(d.queue))
	for {
		select {
		case <-ctx.Done():
			if n := len(d.queue); n > 0 {
				d.logger.Warnf("notification worker stopped with %d pending requests", n)
			}
			return
		case req := <-d.queue:
			d.deliver(ctx, req)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, req model.NotificationRequest) {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.sender.Send(sendCtx, req)
	switch {
	case err == nil:
		d.metrics.Notification(metrics.NotificationDelivered)
		d.logger.Infof("notification %s delivered: %s at %.2f", req.ID, req.StatusLabel, req.Temperature)
	case errors.Is(err, ErrDisabled):
		d.metrics.Notification(metrics.NotificationSkipped)
		d.logger.Debugf("notification %s skipped: %v", req.ID, err)
	default:
		d.metrics.Notification(metrics.NotificationFailed)
		d.logger.Errorf("notification %s failed: %v", req.ID, err)
	}
}
