package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

type countingSender struct {
	calls int
	err   error
}

func (s *countingSender) Send(context.Context, model.NotificationRequest) error {
	s.calls++
	return s.err
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	next := &countingSender{err: errors.New("smtp down")}
	b := NewBreakerSender(next, 2, time.Minute, 0)
	r := model.NewNotificationRequest(25, "READY", time.Now())

	assert.Error(t, b.Send(context.Background(), r))
	assert.Error(t, b.Send(context.Background(), r))
	assert.Equal(t, gobreaker.StateOpen, b.State())

	err := b.Send(context.Background(), r)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, 2, next.calls, "open breaker short-circuits")
}

func TestBreakerIgnoresDisabled(t *testing.T) {
	next := &countingSender{err: ErrDisabled}
	b := NewBreakerSender(next, 1, time.Minute, 0)
	r := model.NewNotificationRequest(25, "READY", time.Now())

	for i := 0; i < 3; i++ {
		assert.True(t, errors.Is(b.Send(context.Background(), r), ErrDisabled))
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 3, next.calls)
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(log.Nop())
	assert.NoError(t, s.Send(context.Background(), model.NewNotificationRequest(25, "READY", time.Now())))
}
