// Package presence tracks which clients are watching the live sensor
// topic, fed by broker subscription lifecycle events.
package presence

import "sync"

// Tracker keeps, per client, how many of its active subscriptions match the
// watched topic. A client with several overlapping filters stays present
// until the last matching one is removed; disconnect removes it at once.
//
// Broker hooks run on broker goroutines, so all methods lock.
type Tracker struct {
	mu       sync.Mutex
	topic    string
	clients  map[string]int
	onChange func(n int)
}

func NewTracker(topic string) *Tracker {
	return &Tracker{topic: topic, clients: make(map[string]int)}
}

// OnChange registers fn to be called with the number of present clients
// after every change. fn runs with the tracker locked and must not call back.
func (t *Tracker) OnChange(fn func(n int)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Topic returns the watched topic.
func (t *Tracker) Topic() string {
	return t.topic
}

func (t *Tracker) OnSubscribe(clientID, filter string) {
	if !Match(filter, t.topic) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clients[clientID]++
	t.changed()
}

func (t *Tracker) OnUnsubscribe(clientID, filter string) {
	if !Match(filter, t.topic) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.clients[clientID]
	if !ok {
		return
	}
	if n-1 <= 0 {
		delete(t.clients, clientID)
	} else {
		t.clients[clientID] = n - 1
	}
	t.changed()
}

func (t *Tracker) OnDisconnect(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.clients[clientID]; !ok {
		return
	}
	delete(t.clients, clientID)
	t.changed()
}

func (t *Tracker) HasSubscribers() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.clients) > 0
}

// Count returns the number of present clients.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.clients)
}

func (t *Tracker) changed() {
	if t.onChange != nil {
		t.onChange(len(t.clients))
	}
}
