package presence

import (
	"bytes"
	"sync"

	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/packets"
)

// Hook feeds the embedded broker's client lifecycle into a Tracker. It keeps
// the active filters of each connected client, so a SUBSCRIBE that replaces
// an existing subscription is not counted twice and an UNSUBSCRIBE of a
// filter the client never held is ignored.
type Hook struct {
	mochi.HookBase
	tracker *Tracker

	mu      sync.Mutex
	filters map[string]map[string]struct{}
}

func NewHook(tracker *Tracker) *Hook {
	return &Hook{tracker: tracker, filters: make(map[string]map[string]struct{})}
}

func (h *Hook) ID() string {
	return "live-subscriber-tracker"
}

func (h *Hook) Provides(b byte) bool {
	return bytes.Contains([]byte{
		mochi.OnSessionEstablished,
		mochi.OnSubscribed,
		mochi.OnUnsubscribed,
		mochi.OnDisconnect,
	}, []byte{b})
}

// OnSessionEstablished counts subscriptions restored from a persistent
// session; those never pass through OnSubscribed.
func (h *Hook) OnSessionEstablished(cl *mochi.Client, _ packets.Packet) {
	if cl.State.Subscriptions == nil {
		return
	}
	for filter := range cl.State.Subscriptions.GetAll() {
		h.add(cl.ID, filter)
	}
}

// OnSubscribed counts every filter the broker granted; reason codes of 0x80
// and above are refusals.
func (h *Hook) OnSubscribed(cl *mochi.Client, pk packets.Packet, reasonCodes []byte) {
	for i, sub := range pk.Filters {
		if i < len(reasonCodes) && reasonCodes[i] >= 0x80 {
			continue
		}
		h.add(cl.ID, sub.Filter)
	}
}

func (h *Hook) OnUnsubscribed(cl *mochi.Client, pk packets.Packet) {
	for _, sub := range pk.Filters {
		h.remove(cl.ID, sub.Filter)
	}
}

func (h *Hook) OnDisconnect(cl *mochi.Client, _ error, _ bool) {
	h.mu.Lock()
	delete(h.filters, cl.ID)
	h.mu.Unlock()
	h.tracker.OnDisconnect(cl.ID)
}

func (h *Hook) add(clientID, filter string) {
	h.mu.Lock()
	active, ok := h.filters[clientID]
	if !ok {
		active = make(map[string]struct{})
		h.filters[clientID] = active
	}
	_, held := active[filter]
	active[filter] = struct{}{}
	h.mu.Unlock()

	if !held {
		h.tracker.OnSubscribe(clientID, filter)
	}
}

func (h *Hook) remove(clientID, filter string) {
	h.mu.Lock()
	active := h.filters[clientID]
	_, held := active[filter]
	delete(active, filter)
	h.mu.Unlock()

	if held {
		h.tracker.OnUnsubscribe(clientID, filter)
	}
}
