package driving

import (
	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// ToolContext carries the shared collaborators handed to every tool by
// reference. Optional collaborators may be nil; a tool logs the gap and
// degrades to an inert button rather than failing initialization.
type ToolContext struct {
	// Bus is the event bus. Required.
	Bus driven.Bus

	// Logger receives tool diagnostics. Required.
	Logger driven.Logger

	// Surface is the page-lookup capability. Required.
	Surface driven.RenderSurface

	// Annotations is the annotation-query capability. Required.
	Annotations driven.AnnotationQuerier

	// Images persists screenshot captures. Optional; only the screenshot
	// tool needs it.
	Images driven.ImageStore

	// Prompter shows the capture description dialog. Optional.
	Prompter driven.Prompter
}

// ToolButton describes a toolbar button. The shell renders it; a degraded
// tool presents Enabled == false.
type ToolButton struct {
	Name    string
	Label   string
	Icon    string
	Enabled bool
	Active  bool
}

// AnnotationCard describes a sidebar card for one annotation.
type AnnotationCard struct {
	AnnotationID string
	PageNumber   int
	Title        string
	Body         string
	CommentCount int
}

// Tool is the contract every annotation tool implements. One tool owns one
// annotation type: its creation UI, its marker rendering and its
// restoration listener. Dispatch is by Name, never by type assertion on
// the concrete tool.
//
// Lifecycle: Initialize is called once with the shared collaborators;
// Activate/Deactivate toggle the only two states a tool has; Destroy
// releases every subscription and marker. Activation is coordinated by the
// toolbar: the previously active tool deactivates fully before the next
// one activates.
type Tool interface {
	// Name is the stable identifier used for dispatch and events.
	Name() string

	// DisplayName is the human-readable tool name.
	DisplayName() string

	// Icon is the toolbar glyph.
	Icon() string

	// Version is the tool's version string.
	Version() string

	// Dependencies names the collaborators the tool requires.
	Dependencies() []string

	// Initialize receives the shared collaborators. It never fails the
	// toolbar: a missing required collaborator is logged and the tool
	// degrades to an inert button.
	Initialize(ctx *ToolContext)

	// Activate installs input listeners scoped to the PDF surface and
	// changes the pointer affordance.
	Activate()

	// Deactivate removes exactly the listeners Activate installed and
	// restores the prior cursor.
	Deactivate()

	// IsActive reports whether the tool is in the Active state.
	IsActive() bool

	// Button returns the toolbar button descriptor.
	Button() ToolButton

	// Card returns the sidebar card descriptor for one of this tool's
	// annotations.
	Card(a domain.Annotation) AnnotationCard

	// Destroy tears the tool down completely.
	Destroy()
}
