// Package events delivers session notifications to subscribers.
package events

import (
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/cssforge/internal/logger"
)

const (
	// CSSChanged is emitted after the CSS text is regenerated.
	CSSChanged = "css.changed"
	// PreviewChanged is emitted after a (debounced) preview render.
	PreviewChanged = "preview.changed"
	// SelectionChanged is emitted when the selected element changes.
	SelectionChanged = "selection.changed"
	// HistoryChanged is emitted after a snapshot is recorded or the
	// history index moves.
	HistoryChanged = "history.changed"
	// Status carries a short user-facing message.
	Status = "status"
)

// Event is a single notification. Payload is usually a map of fields.
type Event struct {
	Type    string
	Payload any
}

// Handler processes an event. A returned error is logged and does not
// stop delivery to remaining subscribers.
type Handler func(Event) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}

// Bus dispatches events synchronously: Publish returns after every handler
// has run.
type Bus struct {
	log    *logger.Logger
	subs   map[string][]subscriptionEntry
	nextID int
	mu     sync.RWMutex
}

// NewBus creates a bus that also writes each event as a debug log entry.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		log:  log.Component("events"),
		subs: make(map[string][]subscriptionEntry),
	}
}

// Publish logs the event and hands it to the subscribers of its type and
// to wildcard ("*") subscribers.
func (b *Bus) Publish(event Event) {
	if b == nil || event.Type == "" {
		return
	}

	b.mu.RLock()
	handlers := append([]subscriptionEntry(nil), b.subs[event.Type]...)
	handlers = append(handlers, b.subs["*"]...)
	b.mu.RUnlock()

	fields := []any{"event_type", event.Type}
	switch payload := event.Payload.(type) {
	case map[string]any:
		keys := make([]string, 0, len(payload))
		for key := range payload {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fields = append(fields, key, payload[key])
		}
	case nil:
	default:
		fields = append(fields, "payload", payload)
	}
	b.log.Debug("session event", fields...)

	for _, entry := range handlers {
		if entry.handler == nil {
			continue
		}
		if err := entry.handler(event); err != nil {
			b.log.Warn("event handler failed", "event_type", event.Type, "error", err.Error())
		}
	}
}

// Subscribe registers handler for eventType; "*" receives every event.
func (b *Bus) Subscribe(eventType string, handler Handler) Subscription {
	if b == nil || handler == nil {
		return noopSubscription{}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[eventType] = append(b.subs[eventType], subscriptionEntry{id: id, handler: handler})
	b.mu.Unlock()

	return subscription{
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			handlers := b.subs[eventType]
			for i, entry := range handlers {
				if entry.id == id {
					b.subs[eventType] = append(handlers[:i:i], handlers[i+1:]...)
					break
				}
			}
		},
	}
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id      int
	handler Handler
}
