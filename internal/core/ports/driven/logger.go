package driven

// Logger is the diagnostic logging collaborator handed to tools. A missing
// logger degrades a tool; it never aborts initialization.
type Logger interface {
	// Debug logs developer-level detail.
	Debug(format string, args ...any)

	// Info logs notable lifecycle events.
	Info(format string, args ...any)

	// Warn logs recoverable problems, e.g. a skipped marker restoration.
	Warn(format string, args ...any)

	// Error logs failures that were contained to one component.
	Error(format string, args ...any)
}
