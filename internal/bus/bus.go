// Package bus implements the synchronous event bus the annotation
// subsystem coordinates through. Emit invokes all current subscribers in
// registration order before returning, so handlers must be short and
// non-blocking; asynchronous work completes first and then emits.
package bus

import (
	"sync"

	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Ensure Bus implements the port.
var _ driven.Bus = (*Bus)(nil)

type subscription struct {
	id      uint64
	handler driven.Handler
}

// Bus dispatches events synchronously to subscribers in registration
// order. Subscribing or unsubscribing from within a handler is safe and
// takes effect for subsequent emits.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[string][]subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[string][]subscription),
	}
}

// Subscribe registers a handler for event. The returned function removes
// exactly this registration; calling it more than once is a no-op.
func (b *Bus) Subscribe(event string, h driven.Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[event] = append(b.handlers[event], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.unsubscribe(event, id)
		})
	}
}

// Emit invokes the current subscribers of event in registration order.
// The subscriber list is snapshotted first, so handlers that subscribe or
// unsubscribe do not affect the in-flight dispatch.
func (b *Bus) Emit(event string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, len(b.handlers[event]))
	copy(subs, b.handlers[event])
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(payload)
	}
}

// SubscriberCount returns the number of live subscriptions for event.
func (b *Bus) SubscriberCount(event string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[event])
}

func (b *Bus) unsubscribe(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[event]
	for i, s := range subs {
		if s.id == id {
			b.handlers[event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[event]) == 0 {
		delete(b.handlers, event)
	}
}
