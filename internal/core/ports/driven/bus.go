package driven

// Handler receives an event payload. Dispatch is synchronous, so handlers
// must be short and non-blocking.
type Handler func(payload any)

// Bus is the synchronous event bus every component coordinates through.
// There is no shared reactive state store; the bus is the only channel
// between tools, the sidebar and the toolbar coordinator.
type Bus interface {
	// Emit invokes all current subscribers of event, in registration
	// order, before returning.
	Emit(event string, payload any)

	// Subscribe registers a handler for event and returns a function that
	// removes exactly that registration.
	Subscribe(event string, h Handler) (unsubscribe func())
}
