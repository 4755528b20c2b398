// Package highlight implements the text-highlight annotation tool. While
// active it listens for completed text-layer selections and turns each one
// into a highlight annotation carrying the selected text, the serialized
// ranges and the selection's bounding box.
package highlight

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
	"github.com/pagemark-labs/pagemark/internal/tools/marker"
)

const (
	toolName    = "highlight"
	toolVersion = "1.0.0"

	// DefaultColor is the highlight fill applied to new highlights.
	DefaultColor = "#ffeb3b"
)

// Ensure Tool implements the contract.
var _ driving.Tool = (*Tool)(nil)

// Tool is the text-highlight tool.
type Tool struct {
	ctx      *driving.ToolContext
	degraded bool
	active   bool

	// colorMu guards color, which config hot-reload may rewrite from
	// another goroutine while a selection handler reads it.
	colorMu sync.RWMutex
	color   string

	registry *marker.Registry
	restorer *marker.Restorer

	prevCursor   driven.CursorStyle
	baseUnsubs   []func()
	activeUnsubs []func()
}

// New creates an uninitialized highlight tool.
func New() *Tool {
	return &Tool{registry: marker.NewRegistry(), color: DefaultColor}
}

// SetColor overrides the fill applied to new highlights. An empty value
// keeps the current color. Safe to call concurrently with selection
// handling.
func (t *Tool) SetColor(color string) {
	if color == "" {
		return
	}
	t.colorMu.Lock()
	t.color = color
	t.colorMu.Unlock()
}

func (t *Tool) fillColor() string {
	t.colorMu.RLock()
	defer t.colorMu.RUnlock()
	return t.color
}

// Name returns the stable tool identifier.
func (t *Tool) Name() string { return toolName }

// DisplayName returns the human-readable name.
func (t *Tool) DisplayName() string { return "Highlight" }

// Icon returns the toolbar glyph.
func (t *Tool) Icon() string { return "🖍" }

// Version returns the tool version.
func (t *Tool) Version() string { return toolVersion }

// Dependencies names the collaborators this tool requires.
func (t *Tool) Dependencies() []string {
	return []string{"bus", "logger", "surface", "annotations"}
}

// Initialize receives the shared collaborators. A missing required
// collaborator degrades the tool to an inert button.
func (t *Tool) Initialize(ctx *driving.ToolContext) {
	t.ctx = ctx
	if ctx == nil || ctx.Bus == nil || ctx.Surface == nil || ctx.Annotations == nil {
		t.degraded = true
		if ctx != nil && ctx.Logger != nil {
			ctx.Logger.Error("highlight tool degraded: %v", domain.ErrDependencyUnavailable)
		}
		return
	}
	if ctx.Logger == nil {
		ctx.Logger = nopLogger{}
	}

	t.restorer = marker.NewRestorer(
		domain.TypeTextHighlight, t.registry, ctx.Surface, ctx.Annotations, ctx.Logger,
		t.buildMarker,
	)

	t.baseUnsubs = append(t.baseUnsubs,
		ctx.Bus.Subscribe(domain.EventPageRendered, t.onPageRendered),
		ctx.Bus.Subscribe(domain.EventAnnotationCreated, t.onAnnotationCreated),
		ctx.Bus.Subscribe(domain.EventAnnotationDeleted, t.onAnnotationDeleted),
		ctx.Bus.Subscribe(domain.EventMarkerHighlightRequested, t.onHighlightRequested),
		ctx.Bus.Subscribe(domain.EventPointerClick, t.onClickInactive),
	)
	ctx.Logger.Info("highlight tool %s initialized", toolVersion)
}

// Activate switches the cursor to the text caret and installs the
// selection listener.
func (t *Tool) Activate() {
	if t.active || t.degraded {
		t.active = !t.degraded
		return
	}
	t.active = true
	t.prevCursor = t.ctx.Surface.Cursor()
	t.ctx.Surface.SetCursor(driven.CursorText)
	t.activeUnsubs = append(t.activeUnsubs,
		t.ctx.Bus.Subscribe(domain.EventTextSelected, t.onTextSelected),
	)
}

// Deactivate removes the selection listener and restores the prior cursor.
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

// Card returns the sidebar card descriptor for a highlight annotation.
func (t *Tool) Card(a domain.Annotation) driving.AnnotationCard {
	body := ""
	if d, ok := a.Data.(domain.HighlightData); ok {
		body = truncate(d.SelectedText, 80)
		if d.Note != "" {
			body = fmt.Sprintf("%s — %s", body, truncate(d.Note, 40))
		}
	}
	return driving.AnnotationCard{
		AnnotationID: a.ID,
		PageNumber:   a.PageNumber,
		Title:        fmt.Sprintf("Highlight · p.%d", a.PageNumber),
		Body:         body,
		CommentCount: a.CommentCount(),
	}
}

// Destroy tears the tool down.
func (t *Tool) Destroy() {
	t.Deactivate()
	for _, u := range t.baseUnsubs {
		u()
	}
	t.baseUnsubs = nil
	t.registry.Clear()
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
	if !ok || evt.Annotation.Type != domain.TypeTextHighlight {
		return
	}
	t.restorer.Restore(evt.Annotation)
}

func (t *Tool) onAnnotationDeleted(payload any) {
	evt, ok := payload.(domain.AnnotationDeletedEvent)
	if !ok || evt.Annotation.Type != domain.TypeTextHighlight {
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

// onClickInactive hit-tests clicks against highlight markers while the tool
// is not active, surfacing the matching sidebar card.
func (t *Tool) onClickInactive(payload any) {
	if t.active || t.degraded {
		return
	}
	evt, ok := payload.(domain.PointerEvent)
	if !ok {
		return
	}
	_, pageNumber, ok := t.ctx.Surface.PageAt(evt.Position)
	if !ok {
		return
	}
	for _, a := range t.ctx.Annotations.AnnotationsByPage(pageNumber) {
		if a.Type != domain.TypeTextHighlight {
			continue
		}
		if n, ok := t.registry.Get(a.ID); ok && n.Attached() && n.Bounds().Contains(evt.Position) {
			t.ctx.Bus.Emit(domain.EventSidebarOpenRequested,
				domain.SidebarPanelEvent{PanelID: domain.PanelAnnotations})
			t.ctx.Bus.Emit(domain.EventCardSelected, domain.AnnotationRef{AnnotationID: a.ID})
			return
		}
	}
}

// onTextSelected turns a completed selection into a creation request. An
// empty selection or one with no ranges is discarded silently.
func (t *Tool) onTextSelected(payload any) {
	evt, ok := payload.(domain.TextSelectionEvent)
	if !ok || !t.active {
		return
	}
	if strings.TrimSpace(evt.Text) == "" || len(evt.Ranges) == 0 {
		t.ctx.Logger.Debug("empty selection discarded: %v", domain.ErrValidation)
		return
	}
	t.ctx.Bus.Emit(domain.EventAnnotationCreateRequested, domain.CreateAnnotationRequest{
		Type:       domain.TypeTextHighlight,
		PageNumber: evt.PageNumber,
		Data: domain.HighlightData{
			SelectedText:   evt.Text,
			HighlightColor: t.fillColor(),
			TextRanges:     evt.Ranges,
			BoundingBox:    evt.BoundingBox,
		},
	})
}

// buildMarker constructs a detached overlay node covering the selection's
// bounding box, translated into viewport coordinates.
func (t *Tool) buildMarker(a domain.Annotation) driven.Node {
	n := t.ctx.Surface.CreateNode("highlight-marker")
	d, ok := a.Data.(domain.HighlightData)
	if !ok {
		return n
	}
	n.Set("color", d.HighlightColor)
	if page, ok := t.ctx.Surface.Page(a.PageNumber); ok {
		origin := page.Bounds().Origin()
		n.SetBounds(d.BoundingBox.Translate(origin.X, origin.Y))
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
