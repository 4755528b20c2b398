package tui

import (
	"context"

	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/messages"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Prompter implements the screenshot description dialog on top of the
// Bubbletea loop. PromptDescription blocks the capture flow while the
// shell shows a text input modal; the response is delivered back over a
// per-request channel.
type Prompter struct {
	requests chan messages.PromptRequested
}

var _ driven.Prompter = (*Prompter)(nil)

// NewPrompter creates a prompter.
func NewPrompter() *Prompter {
	return &Prompter{requests: make(chan messages.PromptRequested)}
}

// Requests returns the channel the shell drains to open the modal.
func (p *Prompter) Requests() <-chan messages.PromptRequested {
	return p.requests
}

// PromptDescription asks the user for a capture description. Returns
// ok=false when the user cancels or the context ends first.
func (p *Prompter) PromptDescription(ctx context.Context) (string, bool) {
	type result struct {
		description string
		ok          bool
	}
	results := make(chan result, 1)

	req := messages.PromptRequested{
		Respond: func(description string, ok bool) {
			results <- result{description: description, ok: ok}
		},
	}

	select {
	case p.requests <- req:
	case <-ctx.Done():
		return "", false
	}

	select {
	case r := <-results:
		return r.description, r.ok
	case <-ctx.Done():
		return "", false
	}
}
