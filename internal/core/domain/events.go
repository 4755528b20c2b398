package domain

// Event names are the public contract of the bus. Payload shapes are the
// structs below; names carry an explicit version suffix so a payload change
// means a new name, never a silent reshape.
const (
	// EventPageRendered is emitted by the rendering engine after a page's
	// DOM has been (re)created. Payload: PageRenderedEvent.
	EventPageRendered = "page.rendered.v1"

	// EventAnnotationCreateRequested carries a tool's intent to persist a
	// new annotation. Payload: CreateAnnotationRequest.
	EventAnnotationCreateRequested = "annotation.create-requested.v1"

	// EventAnnotationUpdateRequested carries an intent to mutate an
	// existing annotation. Payload: UpdateAnnotationRequest.
	EventAnnotationUpdateRequested = "annotation.update-requested.v1"

	// EventAnnotationDeleteRequested carries an intent to delete an
	// annotation. Payload: DeleteAnnotationRequest.
	EventAnnotationDeleteRequested = "annotation.delete-requested.v1"

	// EventAnnotationCreated is emitted by the persistence collaborator
	// once a creation request has been canonicalized. Payload:
	// AnnotationCreatedEvent carrying the full canonical record.
	EventAnnotationCreated = "annotation.created.v1"

	// EventAnnotationUpdated carries the full updated record.
	// Payload: AnnotationUpdatedEvent.
	EventAnnotationUpdated = "annotation.updated.v1"

	// EventAnnotationDeleted carries the full deleted record.
	// Payload: AnnotationDeletedEvent.
	EventAnnotationDeleted = "annotation.deleted.v1"

	// EventToolActivateRequested asks the toolbar coordinator to activate
	// a tool. Payload: ToolEvent.
	EventToolActivateRequested = "tool.activate-requested.v1"

	// EventToolActivated is emitted after a tool has activated.
	// Payload: ToolEvent.
	EventToolActivated = "tool.activated.v1"

	// EventToolDeactivateRequested asks the coordinator to deactivate a
	// tool. Payload: ToolEvent.
	EventToolDeactivateRequested = "tool.deactivate-requested.v1"

	// EventToolDeactivated is emitted after a tool has deactivated.
	// Payload: ToolEvent.
	EventToolDeactivated = "tool.deactivated.v1"

	// EventSidebarOpenRequested asks the shell to open a sidebar panel.
	// Payload: SidebarPanelEvent.
	EventSidebarOpenRequested = "sidebar.open-requested.v1"

	// EventSidebarPanelClosed is emitted when a sidebar panel closes. The
	// coordinator force-deactivates the active tool hosted by that panel.
	// Payload: SidebarPanelEvent.
	EventSidebarPanelClosed = "sidebar.panel-closed.v1"

	// EventPointerDown/Move/Up/Click carry pointer input scoped to the PDF
	// surface, in viewport coordinates. Payload: PointerEvent.
	EventPointerDown  = "surface.pointer-down.v1"
	EventPointerMove  = "surface.pointer-move.v1"
	EventPointerUp    = "surface.pointer-up.v1"
	EventPointerClick = "surface.pointer-click.v1"

	// EventKeyPressed carries keyboard input. Payload: KeyEvent.
	EventKeyPressed = "surface.key-pressed.v1"

	// EventTextSelected is emitted by the text layer when the user completes
	// a text selection on a page. Payload: TextSelectionEvent.
	EventTextSelected = "surface.text-selected.v1"

	// EventCardSelected asks the sidebar to highlight and scroll to the
	// card matching an annotation. Payload: AnnotationRef.
	EventCardSelected = "sidebar.card-selected.v1"

	// EventMarkerHighlightRequested asks the owning tool to highlight the
	// marker matching an annotation. Payload: AnnotationRef.
	EventMarkerHighlightRequested = "marker.highlight-requested.v1"

	// EventNotification carries a transient user-facing notification.
	// Payload: NotificationEvent.
	EventNotification = "shell.notification.v1"
)

// PanelAnnotations is the sidebar panel hosting the annotation tools.
const PanelAnnotations = "annotations"

// PageRenderedEvent announces that page PageNumber's DOM is freshly built.
type PageRenderedEvent struct {
	PageNumber int
}

// CreateAnnotationRequest is an emitted intent to persist a new annotation.
// It carries no id; the persistence collaborator assigns one.
type CreateAnnotationRequest struct {
	Type       AnnotationType
	PageNumber int
	Data       Payload
}

// UpdateAnnotationRequest mutates an existing annotation. A nil Data keeps
// the current payload; a non-empty NewComment appends a sub-comment.
type UpdateAnnotationRequest struct {
	ID         string
	Data       Payload
	NewComment string
}

// DeleteAnnotationRequest asks for an annotation to be removed.
type DeleteAnnotationRequest struct {
	ID string
}

// AnnotationCreatedEvent carries the full canonical annotation.
type AnnotationCreatedEvent struct {
	Annotation Annotation
}

// AnnotationUpdatedEvent carries the full updated annotation.
type AnnotationUpdatedEvent struct {
	Annotation Annotation
}

// AnnotationDeletedEvent carries the full record as it was at deletion.
type AnnotationDeletedEvent struct {
	Annotation Annotation
}

// ToolEvent names a tool for activation lifecycle events.
type ToolEvent struct {
	ToolName string
}

// SidebarPanelEvent names a sidebar panel.
type SidebarPanelEvent struct {
	PanelID string
}

// PointerEvent is pointer input in viewport coordinates.
type PointerEvent struct {
	Position Point
}

// KeyEvent is keyboard input. Key is a lowercase key name ("escape",
// "enter", ...); Ctrl and Meta report modifier state.
type KeyEvent struct {
	Key  string
	Ctrl bool
	Meta bool
}

// TextSelectionEvent is a completed text-layer selection. Ranges address
// the page's text layer nodes; BoundingBox is in page-local pixels.
type TextSelectionEvent struct {
	PageNumber  int
	Text        string
	Ranges      []TextRange
	BoundingBox Rect
}

// AnnotationRef names an annotation for cross-component highlight requests.
type AnnotationRef struct {
	AnnotationID string
}

// NotificationLevel classifies a transient notification.
type NotificationLevel string

const (
	NotifyInfo  NotificationLevel = "info"
	NotifyWarn  NotificationLevel = "warn"
	NotifyError NotificationLevel = "error"
)

// NotificationEvent is a transient user-facing message, e.g. a failed save.
type NotificationEvent struct {
	Level   NotificationLevel
	Message string
}
