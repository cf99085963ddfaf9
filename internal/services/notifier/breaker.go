package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
)

// BreakerSender stops calling a failing sender for a while so that a dead
// SMTP server does not hold the worker for a full timeout per request.
type BreakerSender struct {
	next Sender
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerSender(next Sender, fails uint32, open, interval time.Duration) *BreakerSender {
	if fails == 0 {
		fails = 3
	}
	return &BreakerSender{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     "notifier",
			Interval: interval,
			Timeout:  open,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= fails
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrDisabled) || errors.Is(err, ErrIncompleteSettings)
			},
		}),
	}
}

func (b *BreakerSender) Send(ctx context.Context, req model.NotificationRequest) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Send(ctx, req)
	})
	return err
}

// State exposes the breaker state for diagnostics.
func (b *BreakerSender) State() gobreaker.State {
	return b.cb.State()
}
