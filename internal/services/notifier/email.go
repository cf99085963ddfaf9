package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
)

var (
	ErrDisabled           = errors.New("notifier: e-mail disabled")
	ErrIncompleteSettings = errors.New("notifier: incomplete SMTP settings")
)

const emailSubject = "Temperature Monitor Status"

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	To       string
	// Secure selects implicit TLS; otherwise STARTTLS is required on
	// ports 25 and 587 and attempted elsewhere.
	Secure  bool
	Timeout time.Duration
}

// Complete reports whether every field needed to send is set.
func (c SMTPConfig) Complete() bool {
	for _, v := range []string{c.Host, c.User, c.Password, c.From, c.To} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

type EmailSender struct {
	cfg     SMTPConfig
	enabled func() bool
	dial    func(ctx context.Context, client *mail.Client, msg *mail.Msg) error
}

// NewEmailSender sends through cfg while enabled returns true. A nil
// enabled means always on.
func NewEmailSender(cfg SMTPConfig, enabled func() bool) *EmailSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &EmailSender{
		cfg:     cfg,
		enabled: enabled,
		dial: func(ctx context.Context, client *mail.Client, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}
}

func (s *EmailSender) Send(ctx context.Context, req model.NotificationRequest) error {
	if !s.enabled() {
		return ErrDisabled
	}
	if !s.cfg.Complete() {
		return ErrIncompleteSettings
	}

	msg, err := s.message(req)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := s.dial(ctx, client, msg); err != nil {
		return fmt.Errorf("send mail via %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}
	return nil
}

func (s *EmailSender) message(req model.NotificationRequest) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("sender address: %w", err)
		}
	} else if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(s.cfg.To); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(emailSubject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, formatBody(req))
	return msg, nil
}

func (s *EmailSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Password),
		mail.WithTimeout(s.cfg.Timeout),
	}
	switch {
	case s.cfg.Secure:
		opts = append(opts, mail.WithSSL())
	case s.cfg.Port == 587 || s.cfg.Port == 25:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if s.cfg.Port > 0 {
		opts = append(opts, mail.WithPort(s.cfg.Port))
	}
	return opts
}

func formatBody(req model.NotificationRequest) string {
	return fmt.Sprintf("Status: %s\nTemperature: %.2f C\nTimestamp: %s",
		req.StatusLabel, req.Temperature, req.CreatedAt.UTC().Format(time.RFC3339))
}
