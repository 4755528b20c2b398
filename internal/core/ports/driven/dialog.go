package driven

import "context"

// Prompter models the awaited description dialog shown after a screenshot
// capture. The call suspends until the user decides; ok is false when the
// dialog was cancelled, in which case nothing is persisted or emitted.
type Prompter interface {
	PromptDescription(ctx context.Context) (description string, ok bool)
}
