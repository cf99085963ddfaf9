package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxStatusLabel bounds NotificationRequest.StatusLabel.
const MaxStatusLabel = 15

// NotificationRequest asks the dispatcher to deliver one status message.
type NotificationRequest struct {
	ID          string
	Temperature float64
	StatusLabel string
	CreatedAt   time.Time
}

func NewNotificationRequest(temperature float64, label string, now time.Time) NotificationRequest {
	if len(label) > MaxStatusLabel {
		label = label[:MaxStatusLabel]
	}
	return NotificationRequest{
		ID:          uuid.NewString(),
		Temperature: temperature,
		StatusLabel: label,
		CreatedAt:   now,
	}
}
