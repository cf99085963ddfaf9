package presence

import (
	"encoding/json"
	"fmt"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/LeonardoBeccarini/printer_monitor/internal/model/messages"
	"github.com/LeonardoBeccarini/printer_monitor/pkg/dedup"
)

// Announcements feeds a Tracker from presence events published on an
// external broker, where the monitor cannot see other clients' subscriptions.
type Announcements struct {
	tracker *Tracker
	deduper *dedup.Deduper
}

func NewAnnouncements(tracker *Tracker, deduper *dedup.Deduper) *Announcements {
	return &Announcements{tracker: tracker, deduper: deduper}
}

// Handle is an mqttbus.Handler.
func (a *Announcements) Handle(_ string, msg mqtt.Message) error {
	return a.apply(msg.Payload(), msg.Duplicate())
}

func (a *Announcements) apply(payload []byte, duplicate bool) error {
	// only redeliveries are dropped: a client may legitimately repeat the
	// same subscribe for two overlapping subscriptions
	if a.deduper != nil {
		seen := !a.deduper.ShouldProcess(dedup.Key(payload))
		if seen && duplicate {
			return nil
		}
	}

	var evt messages.PresenceEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("invalid presence event: %w", err)
	}
	clientID := strings.TrimSpace(evt.ClientID)
	if clientID == "" {
		return fmt.Errorf("presence event without client_id")
	}

	switch strings.ToLower(evt.Action) {
	case messages.ActionSubscribe:
		a.tracker.OnSubscribe(clientID, evt.Filter)
	case messages.ActionUnsubscribe:
		a.tracker.OnUnsubscribe(clientID, evt.Filter)
	case messages.ActionDisconnect:
		a.tracker.OnDisconnect(clientID)
	default:
		return fmt.Errorf("unknown presence action %q", evt.Action)
	}
	return nil
}
