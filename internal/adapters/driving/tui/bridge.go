package tui

import (
	"sync"

	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/messages"
	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// bridgedEvents are the bus events the shell re-renders on.
var bridgedEvents = []string{
	domain.EventAnnotationCreated,
	domain.EventAnnotationUpdated,
	domain.EventAnnotationDeleted,
	domain.EventToolActivated,
	domain.EventToolDeactivated,
	domain.EventSidebarOpenRequested,
	domain.EventSidebarPanelClosed,
	domain.EventCardSelected,
	domain.EventNotification,
}

// Bridge forwards bus events into a channel the Bubbletea loop drains. Bus
// emission is synchronous; the bridge buffers so a burst of canonical
// events never blocks the emitter on the render loop.
type Bridge struct {
	events chan messages.BusEvent

	mu     sync.Mutex
	closed bool
	unsubs []func()
}

// NewBridge subscribes to the shell-relevant events on the bus.
func NewBridge(b driven.Bus) *Bridge {
	br := &Bridge{events: make(chan messages.BusEvent, 64)}
	for _, name := range bridgedEvents {
		name := name
		br.unsubs = append(br.unsubs, b.Subscribe(name, func(payload any) {
			br.push(messages.BusEvent{Name: name, Payload: payload})
		}))
	}
	return br
}

// Events returns the bridged event channel.
func (b *Bridge) Events() <-chan messages.BusEvent {
	return b.events
}

// Close unsubscribes and closes the channel.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, u := range b.unsubs {
		u()
	}
	b.unsubs = nil
	close(b.events)
}

func (b *Bridge) push(evt messages.BusEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- evt:
	default:
		// A full buffer drops the oldest event; the shell re-reads its
		// state on every render so a dropped re-render trigger is harmless.
		select {
		case <-b.events:
		default:
		}
		b.events <- evt
	}
}
