// Package messages defines Bubbletea message types for the shell.
// Messages represent events and commands that flow through the Elm
// architecture.
package messages

import (
	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

// BusEvent mirrors one event from the application bus into the Bubbletea
// loop. The shell re-renders in response; the payload is only inspected for
// presentation (notifications, tool state).
type BusEvent struct {
	Name    string
	Payload any
}

// PromptRequested asks the shell to open the description input modal for a
// pending screenshot capture.
type PromptRequested struct {
	Respond func(description string, ok bool)
}

// Notification is a transient message for the status line.
type Notification struct {
	Level   domain.NotificationLevel
	Message string
}

// BridgeClosed signals that the bus bridge has shut down and no further
// BusEvent messages will arrive.
type BridgeClosed struct{}
