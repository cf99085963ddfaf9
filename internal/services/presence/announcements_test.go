package presence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/printer_monitor/pkg/dedup"
)

func TestAnnouncementsDriveTracker(t *testing.T) {
	tr := NewTracker(watched)
	a := NewAnnouncements(tr, dedup.New(time.Minute, 100))

	require.NoError(t, a.apply([]byte(`{"client_id":"web","filter":"mqtt/sensor","action":"subscribe"}`), false))
	assert.True(t, tr.HasSubscribers())

	require.NoError(t, a.apply([]byte(`{"client_id":"web","action":"disconnect"}`), false))
	assert.False(t, tr.HasSubscribers())
}

func TestAnnouncementsDropRedelivery(t *testing.T) {
	tr := NewTracker(watched)
	a := NewAnnouncements(tr, dedup.New(time.Minute, 100))
	sub := []byte(`{"client_id":"web","filter":"mqtt/sensor","action":"subscribe"}`)
	unsub := []byte(`{"client_id":"web","filter":"mqtt/sensor","action":"unsubscribe"}`)

	require.NoError(t, a.apply(sub, false))
	require.NoError(t, a.apply(sub, true))
	require.NoError(t, a.apply(unsub, false))

	assert.False(t, tr.HasSubscribers(), "redelivered subscribe must not be counted twice")
}

func TestAnnouncementsRepeatWithoutDuplicateFlagCounts(t *testing.T) {
	tr := NewTracker(watched)
	a := NewAnnouncements(tr, dedup.New(time.Minute, 100))
	sub := []byte(`{"client_id":"web","filter":"mqtt/sensor","action":"subscribe"}`)

	require.NoError(t, a.apply(sub, false))
	require.NoError(t, a.apply(sub, false))
	require.NoError(t, a.apply([]byte(`{"client_id":"web","filter":"mqtt/sensor","action":"unsubscribe"}`), false))

	assert.True(t, tr.HasSubscribers())
}

func TestAnnouncementsRejectMalformed(t *testing.T) {
	a := NewAnnouncements(NewTracker(watched), nil)
	assert.Error(t, a.apply([]byte(`not json`), false))
	assert.Error(t, a.apply([]byte(`{"action":"subscribe"}`), false))
	assert.Error(t, a.apply([]byte(`{"client_id":"x","action":"wave"}`), false))
}
