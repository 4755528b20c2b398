// Package comment implements the comment annotation tool: a point-and-type
// pin. While active, a click on a page opens a floating text editor; a
// confirmed non-empty text emits a creation request carrying the
// page-local click position.
package comment

import (
	"fmt"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
	"github.com/pagemark-labs/pagemark/internal/tools/marker"
)

const (
	toolName    = "comment"
	toolVersion = "1.0.0"

	markerSize = 16
)

// Ensure Tool implements the contract.
var _ driving.Tool = (*Tool)(nil)

// Tool is the comment tool. It owns its marker registry, the restoration
// listener and the floating editor.
type Tool struct {
	ctx      *driving.ToolContext
	degraded bool
	active   bool

	registry *marker.Registry
	restorer *marker.Restorer
	editor   *Editor

	prevCursor   driven.CursorStyle
	baseUnsubs   []func()
	activeUnsubs []func()
}

// New creates an uninitialized comment tool.
func New() *Tool {
	return &Tool{registry: marker.NewRegistry()}
}

// Name returns the stable tool identifier.
func (t *Tool) Name() string { return toolName }

// DisplayName returns the human-readable name.
func (t *Tool) DisplayName() string { return "Comment" }

// Icon returns the toolbar glyph.
func (t *Tool) Icon() string { return "💬" }

// Version returns the tool version.
func (t *Tool) Version() string { return toolVersion }

// Dependencies names the collaborators this tool requires.
func (t *Tool) Dependencies() []string {
	return []string{"bus", "logger", "surface", "annotations"}
}

// Initialize receives the shared collaborators. A missing required
// collaborator degrades the tool to an inert button; it never fails the
// toolbar.
func (t *Tool) Initialize(ctx *driving.ToolContext) {
	t.ctx = ctx
	if ctx == nil || ctx.Bus == nil || ctx.Surface == nil || ctx.Annotations == nil {
		t.degraded = true
		if ctx != nil && ctx.Logger != nil {
			ctx.Logger.Error("comment tool degraded: %v", domain.ErrDependencyUnavailable)
		}
		return
	}
	if ctx.Logger == nil {
		ctx.Logger = nopLogger{}
	}

	t.restorer = marker.NewRestorer(
		domain.TypeComment, t.registry, ctx.Surface, ctx.Annotations, ctx.Logger,
		t.buildMarker,
	)

	// Restoration and marker bookkeeping run for the tool's whole
	// lifetime, independent of the Active state.
	t.baseUnsubs = append(t.baseUnsubs,
		ctx.Bus.Subscribe(domain.EventPageRendered, t.onPageRendered),
		ctx.Bus.Subscribe(domain.EventAnnotationCreated, t.onAnnotationCreated),
		ctx.Bus.Subscribe(domain.EventAnnotationUpdated, t.onAnnotationUpdated),
		ctx.Bus.Subscribe(domain.EventAnnotationDeleted, t.onAnnotationDeleted),
		ctx.Bus.Subscribe(domain.EventMarkerHighlightRequested, t.onHighlightRequested),
		ctx.Bus.Subscribe(domain.EventPointerClick, t.onClickInactive),
	)
	ctx.Logger.Info("comment tool %s initialized", toolVersion)
}

// Activate switches the cursor to a crosshair and installs the creation
// click and key listeners.
func (t *Tool) Activate() {
	if t.active || t.degraded {
		t.active = !t.degraded
		return
	}
	t.active = true
	t.prevCursor = t.ctx.Surface.Cursor()
	t.ctx.Surface.SetCursor(driven.CursorCrosshair)
	t.activeUnsubs = append(t.activeUnsubs,
		t.ctx.Bus.Subscribe(domain.EventPointerClick, t.onClickActive),
		t.ctx.Bus.Subscribe(domain.EventKeyPressed, t.onKeyPressed),
	)
}

// Deactivate removes exactly the listeners Activate installed, restores
// the prior cursor and discards any open editor without emitting.
func (t *Tool) Deactivate() {
	if !t.active {
		return
	}
	t.active = false
	if t.degraded {
		return
	}
	for _, u := range t.activeUnsubs {
		u()
	}
	t.activeUnsubs = nil
	t.ctx.Surface.SetCursor(t.prevCursor)
	t.closeEditor()
}

// IsActive reports the Active state.
func (t *Tool) IsActive() bool { return t.active }

// Button returns the toolbar descriptor; a degraded tool is disabled.
func (t *Tool) Button() driving.ToolButton {
	return driving.ToolButton{
		Name:    toolName,
		Label:   t.DisplayName(),
		Icon:    t.Icon(),
		Enabled: !t.degraded,
		Active:  t.active,
	}
}

// Card returns the sidebar card descriptor for a comment annotation.
func (t *Tool) Card(a domain.Annotation) driving.AnnotationCard {
	body := ""
	if d, ok := a.Data.(domain.CommentData); ok {
		body = truncate(d.Content, 80)
	}
	return driving.AnnotationCard{
		AnnotationID: a.ID,
		PageNumber:   a.PageNumber,
		Title:        fmt.Sprintf("Comment · p.%d", a.PageNumber),
		Body:         body,
		CommentCount: a.CommentCount(),
	}
}

// Destroy tears the tool down: deactivation, lifetime subscriptions and
// every registered marker.
func (t *Tool) Destroy() {
	t.Deactivate()
	for _, u := range t.baseUnsubs {
		u()
	}
	t.baseUnsubs = nil
	t.registry.Clear()
}

// Editor returns the open floating editor, if any. The shell routes text
// input into it.
func (t *Tool) Editor() (*Editor, bool) {
	if t.editor == nil {
		return nil, false
	}
	return t.editor, true
}

func (t *Tool) onPageRendered(payload any) {
	evt, ok := payload.(domain.PageRenderedEvent)
	if !ok {
		return
	}
	t.restorer.RestorePage(evt.PageNumber)
}

func (t *Tool) onAnnotationCreated(payload any) {
	evt, ok := payload.(domain.AnnotationCreatedEvent)
	if !ok || evt.Annotation.Type != domain.TypeComment {
		return
	}
	t.restorer.Restore(evt.Annotation)
}

// onAnnotationUpdated rebuilds the marker so a moved pin repositions.
func (t *Tool) onAnnotationUpdated(payload any) {
	evt, ok := payload.(domain.AnnotationUpdatedEvent)
	if !ok || evt.Annotation.Type != domain.TypeComment {
		return
	}
	t.registry.Remove(evt.Annotation.ID)
	t.restorer.Restore(evt.Annotation)
}

func (t *Tool) onAnnotationDeleted(payload any) {
	evt, ok := payload.(domain.AnnotationDeletedEvent)
	if !ok || evt.Annotation.Type != domain.TypeComment {
		return
	}
	t.registry.Remove(evt.Annotation.ID)
}

func (t *Tool) onHighlightRequested(payload any) {
	ref, ok := payload.(domain.AnnotationRef)
	if !ok {
		return
	}
	if n, ok := t.registry.Get(ref.AnnotationID); ok && n.Attached() {
		n.Set(driven.AttrHighlighted, "true")
	}
}

// onClickInactive hit-tests clicks against this tool's markers while the
// tool is not active, asking the sidebar to surface the matching card.
func (t *Tool) onClickInactive(payload any) {
	if t.active || t.degraded {
		return
	}
	evt, ok := payload.(domain.PointerEvent)
	if !ok {
		return
	}
	for _, a := range t.annotationsAt(evt.Position) {
		t.ctx.Bus.Emit(domain.EventSidebarOpenRequested,
			domain.SidebarPanelEvent{PanelID: domain.PanelAnnotations})
		t.ctx.Bus.Emit(domain.EventCardSelected, domain.AnnotationRef{AnnotationID: a})
		return
	}
}

func (t *Tool) annotationsAt(p domain.Point) []string {
	var hits []string
	_, pageNumber, ok := t.ctx.Surface.PageAt(p)
	if !ok {
		return nil
	}
	for _, a := range t.ctx.Annotations.AnnotationsByPage(pageNumber) {
		if a.Type != domain.TypeComment {
			continue
		}
		if n, ok := t.registry.Get(a.ID); ok && n.Attached() && n.Bounds().Contains(p) {
			hits = append(hits, a.ID)
		}
	}
	return hits
}

// onClickActive intercepts clicks while active: a click inside a page
// opens the floating editor; clicks outside any page, or while an editor
// is already open, are ignored.
func (t *Tool) onClickActive(payload any) {
	evt, ok := payload.(domain.PointerEvent)
	if !ok || !t.active {
		return
	}
	if t.editor != nil {
		t.ctx.Logger.Debug("click ignored: %v", domain.ErrEditorOpen)
		return
	}
	page, pageNumber, ok := t.ctx.Surface.PageAt(evt.Position)
	if !ok {
		return
	}
	local := evt.Position.Sub(page.Bounds().Origin())
	t.openEditor(pageNumber, local, evt.Position)
}

func (t *Tool) onKeyPressed(payload any) {
	evt, ok := payload.(domain.KeyEvent)
	if !ok || t.editor == nil {
		return
	}
	switch {
	case evt.Key == "enter" && (evt.Ctrl || evt.Meta):
		t.ConfirmEditor()
	case evt.Key == "escape":
		t.CancelEditor()
	}
}

// ConfirmEditor emits a creation request if the editor holds non-empty
// trimmed text. Empty text is a local validation failure: the editor stays
// open and nothing is emitted.
func (t *Tool) ConfirmEditor() {
	if t.editor == nil {
		return
	}
	content, ok := t.editor.TrimmedContent()
	if !ok {
		t.ctx.Logger.Debug("empty comment rejected: %v", domain.ErrValidation)
		return
	}
	req := domain.CreateAnnotationRequest{
		Type:       domain.TypeComment,
		PageNumber: t.editor.PageNumber(),
		Data: domain.CommentData{
			Position: t.editor.Anchor(),
			Content:  content,
		},
	}
	t.closeEditor()
	t.ctx.Bus.Emit(domain.EventAnnotationCreateRequested, req)
}

// CancelEditor discards the editor with no emitted request.
func (t *Tool) CancelEditor() {
	t.closeEditor()
}

func (t *Tool) openEditor(pageNumber int, anchor, viewport domain.Point) {
	t.editor = newEditor(t.ctx.Surface, pageNumber, anchor, viewport)
	t.ctx.Logger.Debug("comment editor opened on page %d at (%.0f, %.0f)",
		pageNumber, viewport.X, viewport.Y)
}

func (t *Tool) closeEditor() {
	if t.editor == nil {
		return
	}
	t.editor.dispose()
	t.editor = nil
}

// buildMarker constructs a detached pin node for a comment annotation. The
// pin is centered on the stored page-local position, translated into
// viewport coordinates via the page container origin.
func (t *Tool) buildMarker(a domain.Annotation) driven.Node {
	n := t.ctx.Surface.CreateNode("comment-marker")
	d, ok := a.Data.(domain.CommentData)
	if !ok {
		return n
	}
	if page, ok := t.ctx.Surface.Page(a.PageNumber); ok {
		origin := page.Bounds().Origin()
		n.SetBounds(domain.Rect{
			X:      origin.X + d.Position.X - markerSize/2,
			Y:      origin.Y + d.Position.Y - markerSize/2,
			Width:  markerSize,
			Height: markerSize,
		})
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
