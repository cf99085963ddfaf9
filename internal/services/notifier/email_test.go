package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
)

func completeConfig() SMTPConfig {
	return SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "monitor",
		Password: "secret",
		From:     "monitor@example.com",
		To:       "maker@example.com",
	}
}

func TestEmailDisabled(t *testing.T) {
	s := NewEmailSender(completeConfig(), func() bool { return false })
	err := s.Send(context.Background(), model.NewNotificationRequest(21, "READY", time.Now()))
	assert.True(t, errors.Is(err, ErrDisabled))
}

func TestEmailIncompleteSettings(t *testing.T) {
	cfg := completeConfig()
	cfg.Password = ""
	s := NewEmailSender(cfg, nil)
	err := s.Send(context.Background(), model.NewNotificationRequest(21, "READY", time.Now()))
	assert.True(t, errors.Is(err, ErrIncompleteSettings))
}

func TestFormatBody(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	body := formatBody(model.NewNotificationRequest(31.456, "TOO HOT", at))
	assert.Equal(t, "Status: TOO HOT\nTemperature: 31.46 C\nTimestamp: 2026-02-03T04:05:06Z", body)
}

func TestEmailSendBuildsMessage(t *testing.T) {
	s := NewEmailSender(completeConfig(), nil)
	var got *mail.Msg
	s.dial = func(_ context.Context, _ *mail.Client, msg *mail.Msg) error {
		got = msg
		return nil
	}

	require.NoError(t, s.Send(context.Background(), model.NewNotificationRequest(22, "READY", time.Now())))
	require.NotNil(t, got)
	assert.Equal(t, []string{emailSubject}, got.GetGenHeader(mail.HeaderSubject))
	rcpts, err := got.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"maker@example.com"}, rcpts)
}

func TestEmailSendWrapsDialError(t *testing.T) {
	s := NewEmailSender(completeConfig(), nil)
	boom := errors.New("dial tcp: i/o timeout")
	s.dial = func(context.Context, *mail.Client, *mail.Msg) error { return boom }

	err := s.Send(context.Background(), model.NewNotificationRequest(22, "READY", time.Now()))
	assert.True(t, errors.Is(err, boom))
}

func TestClientOptionsPerPort(t *testing.T) {
	for _, tc := range []struct {
		name   string
		secure bool
		port   int
	}{
		{"implicit tls", true, 465},
		{"starttls", false, 587},
		{"opportunistic", false, 2525},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := completeConfig()
			cfg.Secure, cfg.Port = tc.secure, tc.port
			s := NewEmailSender(cfg, nil)
			c, err := mail.NewClient(cfg.Host, s.clientOptions()...)
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}
