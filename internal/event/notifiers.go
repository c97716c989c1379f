package event

import (
	"context"
	"log"
	"sync"
)

// NopNotifier discards all events.
type NopNotifier struct{}

// Publish implements Notifier.
func (NopNotifier) Publish(context.Context, Event) {}

// LogNotifier writes events to the process log.
type LogNotifier struct{}

// Publish implements Notifier.
func (LogNotifier) Publish(_ context.Context, evt Event) {
	log.Printf("event %s vault=%d id=%s", evt.Topic, evt.VaultID, evt.ID)
}

// MemoryNotifier records published events for inspection in tests.
type MemoryNotifier struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Notifier.
func (n *MemoryNotifier) Publish(_ context.Context, evt Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
}

// Events returns a copy of all events published so far.
func (n *MemoryNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}
