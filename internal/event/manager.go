// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Handler defines the function signature for event subscribers.
// It returns true if the event was consumed; later handlers still run.
type Handler func(e Event) bool

// SubscriptionID identifies one Subscribe call so it can be undone.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]subscription
	byID     map[SubscriptionID]Type
	nextID   SubscriptionID

	queueMu sync.Mutex
	queue   []Event
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
		byID:     make(map[SubscriptionID]Type),
	}
}

// Subscribe adds a handler for eventType and returns its ID.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: id, handler: handler})
	m.byID[id] = eventType
	logger.Debugf("Event Manager: Handler %d subscribed to %v", id, eventType)
	return id
}

// Unsubscribe removes the handler registered under id. Unknown IDs are ignored.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	eventType, ok := m.byID[id]
	if !ok {
		return
	}
	delete(m.byID, id)

	subs := m.handlers[eventType]
	kept := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		delete(m.handlers, eventType)
	} else {
		m.handlers[eventType] = kept
	}
	logger.Debugf("Event Manager: Handler %d unsubscribed from %v", id, eventType)
}

// HandlerCount reports how many handlers listen for eventType.
func (m *Manager) HandlerCount(eventType Type) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[eventType])
}

// Dispatch sends an event to all registered handlers for its type,
// synchronously on the caller's goroutine.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	e := Event{Type: eventType, Data: data}

	m.mu.RLock()
	subs := m.handlers[eventType]
	// Copy so handlers may unsubscribe during dispatch.
	handlers := make([]Handler, len(subs))
	for i, s := range subs {
		handlers[i] = s.handler
	}
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	logger.Debugf("Event Manager: Dispatching %v to %d handler(s)", eventType, len(handlers))

	for _, h := range handlers {
		h(e)
	}
}

// Queue records an event for the UI loop. Safe from any goroutine.
func (m *Manager) Queue(eventType Type, data interface{}) {
	m.queueMu.Lock()
	m.queue = append(m.queue, Event{Type: eventType, Data: data})
	m.queueMu.Unlock()
}

// DrainQueue dispatches queued events in arrival order and returns how many
// were delivered. Events queued by handlers are left for the next drain.
func (m *Manager) DrainQueue() int {
	m.queueMu.Lock()
	pending := m.queue
	m.queue = nil
	m.queueMu.Unlock()

	for _, e := range pending {
		m.Dispatch(e.Type, e.Data)
	}
	return len(pending)
}
