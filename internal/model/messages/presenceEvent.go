package messages

// PresenceEvent is announced by live-feed clients on an external broker,
// where subscription lifecycle is not observable directly. Clients set a
// "disconnect" event as their MQTT will.
type PresenceEvent struct {
	ClientID string `json:"client_id"`
	Filter   string `json:"filter,omitempty"`
	Action   string `json:"action"`
}

const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionDisconnect  = "disconnect"
)
