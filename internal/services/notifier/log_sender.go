package notifier

import (
	"context"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/log"
)

// LogSender writes notifications to the log. Used when SMTP is not configured.
type LogSender struct {
	logger log.Logger
}

func NewLogSender(logger log.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, req model.NotificationRequest) error {
	s.logger.Infof("notification: status %s, temperature %.2f C", req.StatusLabel, req.Temperature)
	return nil
}
