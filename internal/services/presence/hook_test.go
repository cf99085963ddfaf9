package presence

import (
	"testing"

	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/packets"
	"github.com/stretchr/testify/assert"
)

func subscribePacket(filters ...string) packets.Packet {
	pk := packets.Packet{}
	for _, f := range filters {
		pk.Filters = append(pk.Filters, packets.Subscription{Filter: f})
	}
	return pk
}

func TestHookProvides(t *testing.T) {
	h := NewHook(NewTracker(watched))
	assert.True(t, h.Provides(mochi.OnSubscribed))
	assert.True(t, h.Provides(mochi.OnUnsubscribed))
	assert.True(t, h.Provides(mochi.OnDisconnect))
	assert.True(t, h.Provides(mochi.OnSessionEstablished))
	assert.False(t, h.Provides(mochi.OnPublish))
}

func TestHookLifecycle(t *testing.T) {
	tr := NewTracker(watched)
	h := NewHook(tr)
	cl := &mochi.Client{ID: "dashboard"}

	h.OnSubscribed(cl, subscribePacket("mqtt/sensor", "mqtt/#"), []byte{0x00, 0x00})
	assert.True(t, tr.HasSubscribers())

	h.OnUnsubscribed(cl, subscribePacket("mqtt/sensor"))
	assert.True(t, tr.HasSubscribers())

	h.OnDisconnect(cl, nil, false)
	assert.False(t, tr.HasSubscribers())
}

func TestHookSkipsRefusedFilters(t *testing.T) {
	tr := NewTracker(watched)
	h := NewHook(tr)

	h.OnSubscribed(&mochi.Client{ID: "c"}, subscribePacket("mqtt/sensor"), []byte{0x87})
	assert.False(t, tr.HasSubscribers())
}

func TestHookResubscribeReplacesSubscription(t *testing.T) {
	tr := NewTracker(watched)
	h := NewHook(tr)
	cl := &mochi.Client{ID: "dashboard"}

	h.OnSubscribed(cl, subscribePacket("mqtt/#"), []byte{0x00})
	h.OnSubscribed(cl, subscribePacket("mqtt/#"), []byte{0x00})
	assert.Equal(t, 1, tr.Count())

	h.OnUnsubscribed(cl, subscribePacket("mqtt/#"))
	assert.False(t, tr.HasSubscribers(), "one unsubscribe removes the replaced subscription")
}

func TestHookIgnoresUnsubscribeOfUnknownFilter(t *testing.T) {
	tr := NewTracker(watched)
	h := NewHook(tr)
	cl := &mochi.Client{ID: "dashboard"}

	h.OnSubscribed(cl, subscribePacket("mqtt/sensor"), []byte{0x00})
	h.OnUnsubscribed(cl, subscribePacket("mqtt/+"))
	assert.True(t, tr.HasSubscribers())
}

func TestHookCountsRestoredSession(t *testing.T) {
	tr := NewTracker(watched)
	h := NewHook(tr)
	cl := &mochi.Client{ID: "dashboard"}
	cl.State.Subscriptions = mochi.NewSubscriptions()
	cl.State.Subscriptions.Add("mqtt/sensor", packets.Subscription{Filter: "mqtt/sensor"})

	h.OnSessionEstablished(cl, packets.Packet{})
	assert.True(t, tr.HasSubscribers())

	h.OnDisconnect(cl, nil, false)
	assert.False(t, tr.HasSubscribers())

	// reconnecting with the same session restores the subscription once
	h.OnSessionEstablished(cl, packets.Packet{})
	h.OnSubscribed(cl, subscribePacket("mqtt/sensor"), []byte{0x00})
	h.OnUnsubscribed(cl, subscribePacket("mqtt/sensor"))
	assert.False(t, tr.HasSubscribers())
}
