package domain

import "errors"

// Domain errors represent annotation subsystem failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested annotation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an annotation id collision.
	// Id uniqueness is a hard invariant of the collection.
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation indicates locally-handled invalid input (empty comment
	// text, degenerate capture rect). Never surfaced as a system error and
	// never produces an emitted event.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupportedType indicates an unknown annotation type tag.
	ErrUnsupportedType = errors.New("unsupported annotation type")

	// ErrDependencyUnavailable indicates a tool's initialization found a
	// required collaborator missing. The tool degrades to an inert button
	// instead of failing the toolbar.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrPersistence indicates the persistence collaborator rejected or
	// failed a save. No created event fires for the attempted annotation.
	ErrPersistence = errors.New("persistence failed")

	// ErrSaveTimeout indicates a save did not settle within the configured
	// timeout and is treated as failed.
	ErrSaveTimeout = errors.New("save timed out")

	// ErrRenderTargetMissing indicates no page container exists to host a
	// marker. The affected annotation is skipped; the restoration batch
	// continues.
	ErrRenderTargetMissing = errors.New("render target missing")

	// ErrToolUnknown indicates an activation request named an unregistered
	// tool.
	ErrToolUnknown = errors.New("unknown tool")

	// ErrEditorOpen indicates a comment editor is already open. Only one
	// editor instance may exist at a time.
	ErrEditorOpen = errors.New("editor already open")
)
