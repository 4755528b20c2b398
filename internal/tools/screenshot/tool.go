// Package screenshot implements the screenshot annotation tool: a
// drag-rectangle region capture. The drag shows a dashed selection
// rectangle; releasing it extracts the clamped region from the page
// raster, prompts for an optional description and emits a creation
// request. The tool stays active after a successful capture so
// consecutive captures need no toolbar round trip.
package screenshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
	"github.com/pagemark-labs/pagemark/internal/tools/marker"
)

const (
	toolName    = "screenshot"
	toolVersion = "1.0.0"

	// MinSelection is the noise threshold: a finalized rectangle smaller
	// than this in either dimension is discarded with no side effects.
	MinSelection = 10
)

// Ensure Tool implements the contract.
var _ driving.Tool = (*Tool)(nil)

// Tool is the screenshot tool.
type Tool struct {
	ctx      *driving.ToolContext
	degraded bool
	active   bool

	registry *marker.Registry
	restorer *marker.Restorer

	// minMu guards minSelection, which config hot-reload may rewrite from
	// another goroutine while a drag handler reads it.
	minMu        sync.RWMutex
	minSelection float64

	dragging  bool
	dragStart domain.Point
	selection driven.Node

	prevCursor   driven.CursorStyle
	baseUnsubs   []func()
	activeUnsubs []func()
}

// New creates an uninitialized screenshot tool.
func New() *Tool {
	return &Tool{registry: marker.NewRegistry(), minSelection: MinSelection}
}

// SetMinSelection overrides the drag noise threshold. Non-positive values
// keep the current threshold. Safe to call concurrently with drag
// handling.
func (t *Tool) SetMinSelection(px float64) {
	if px <= 0 {
		return
	}
	t.minMu.Lock()
	t.minSelection = px
	t.minMu.Unlock()
}

func (t *Tool) threshold() float64 {
	t.minMu.RLock()
	defer t.minMu.RUnlock()
	return t.minSelection
}

// Name returns the stable tool identifier.
func (t *Tool) Name() string { return toolName }

// DisplayName returns the human-readable name.
func (t *Tool) DisplayName() string { return "Screenshot" }

// Icon returns the toolbar glyph.
func (t *Tool) Icon() string { return "📷" }

// Version returns the tool version.
func (t *Tool) Version() string { return toolVersion }

// Dependencies names the collaborators this tool requires. The image
// store and the description prompter are specific to this tool.
func (t *Tool) Dependencies() []string {
	return []string{"bus", "logger", "surface", "annotations", "images", "prompter"}
}

// Initialize receives the shared collaborators. A missing collaborator,
// including the optional image store or prompter, degrades the tool to an
// inert button without failing the toolbar.
func (t *Tool) Initialize(ctx *driving.ToolContext) {
	t.ctx = ctx
	if ctx == nil || ctx.Bus == nil || ctx.Surface == nil || ctx.Annotations == nil ||
		ctx.Images == nil || ctx.Prompter == nil {
		t.degraded = true
		if ctx != nil && ctx.Logger != nil {
			ctx.Logger.Error("screenshot tool degraded: %v", domain.ErrDependencyUnavailable)
		}
		return
	}
	if ctx.Logger == nil {
		ctx.Logger = nopLogger{}
	}

	t.restorer = marker.NewRestorer(
		domain.TypeScreenshot, t.registry, ctx.Surface, ctx.Annotations, ctx.Logger,
		t.buildMarker,
	)

	t.baseUnsubs = append(t.baseUnsubs,
		ctx.Bus.Subscribe(domain.EventPageRendered, t.onPageRendered),
		ctx.Bus.Subscribe(domain.EventAnnotationCreated, t.onAnnotationCreated),
		ctx.Bus.Subscribe(domain.EventAnnotationDeleted, t.onAnnotationDeleted),
		ctx.Bus.Subscribe(domain.EventMarkerHighlightRequested, t.onHighlightRequested),
	)
	ctx.Logger.Info("screenshot tool %s initialized", toolVersion)
}

// Activate switches the cursor to a crosshair and installs the drag
// listeners.
func (t *Tool) Activate() {
	if t.active || t.degraded {
		t.active = !t.degraded
		return
	}
	t.active = true
	t.prevCursor = t.ctx.Surface.Cursor()
	t.ctx.Surface.SetCursor(driven.CursorCrosshair)
	t.activeUnsubs = append(t.activeUnsubs,
		t.ctx.Bus.Subscribe(domain.EventPointerDown, t.onPointerDown),
		t.ctx.Bus.Subscribe(domain.EventPointerMove, t.onPointerMove),
		t.ctx.Bus.Subscribe(domain.EventPointerUp, t.onPointerUp),
	)
}

// Deactivate removes the drag listeners, restores the prior cursor and
// drops any in-flight selection.
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
	t.resetSelection()
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

// Card returns the sidebar card descriptor for a screenshot annotation.
func (t *Tool) Card(a domain.Annotation) driving.AnnotationCard {
	body := ""
	if d, ok := a.Data.(domain.ScreenshotData); ok {
		body = d.Description
		if body == "" {
			body = fmt.Sprintf("%.0f×%.0f capture", d.Rect.Width, d.Rect.Height)
		}
	}
	return driving.AnnotationCard{
		AnnotationID: a.ID,
		PageNumber:   a.PageNumber,
		Title:        fmt.Sprintf("Screenshot · p.%d", a.PageNumber),
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

// Selecting reports whether a drag selection is in flight.
func (t *Tool) Selecting() bool { return t.dragging }

func (t *Tool) onPageRendered(payload any) {
	evt, ok := payload.(domain.PageRenderedEvent)
	if !ok {
		return
	}
	t.restorer.RestorePage(evt.PageNumber)
}

func (t *Tool) onAnnotationCreated(payload any) {
	evt, ok := payload.(domain.AnnotationCreatedEvent)
	if !ok || evt.Annotation.Type != domain.TypeScreenshot {
		return
	}
	t.restorer.Restore(evt.Annotation)
}

func (t *Tool) onAnnotationDeleted(payload any) {
	evt, ok := payload.(domain.AnnotationDeletedEvent)
	if !ok || evt.Annotation.Type != domain.TypeScreenshot {
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

// onPointerDown starts a drag and shows the dashed selection rectangle.
func (t *Tool) onPointerDown(payload any) {
	evt, ok := payload.(domain.PointerEvent)
	if !ok || !t.active || t.dragging {
		return
	}
	t.dragging = true
	t.dragStart = evt.Position
	t.selection = t.ctx.Surface.CreateNode("selection-rect")
	t.selection.Set("style", "dashed")
	t.selection.SetBounds(domain.Rect{X: evt.Position.X, Y: evt.Position.Y})
	t.ctx.Surface.Root().Append(t.selection)
}

// onPointerMove resizes the selection to the bounding box of the start
// and current pointer positions.
func (t *Tool) onPointerMove(payload any) {
	evt, ok := payload.(domain.PointerEvent)
	if !ok || !t.dragging {
		return
	}
	t.selection.SetBounds(domain.BoundingBox(t.dragStart, evt.Position))
}

// onPointerUp finalizes the selection and runs the capture flow. The
// selection state always resets; the tool itself stays active.
func (t *Tool) onPointerUp(payload any) {
	evt, ok := payload.(domain.PointerEvent)
	if !ok || !t.dragging {
		return
	}
	rect := domain.BoundingBox(t.dragStart, evt.Position)
	t.resetSelection()

	if th := t.threshold(); rect.Width < th || rect.Height < th {
		t.ctx.Logger.Debug("selection %.0f×%.0f below threshold, discarded",
			rect.Width, rect.Height)
		return
	}
	t.capture(rect)
}

// capture maps the finalized viewport rectangle onto the target page's
// raster, extracts the clamped region, prompts for a description and
// emits the creation request. A cancelled prompt or a failed image save
// emits nothing; the attempted annotation simply does not exist.
func (t *Tool) capture(viewportRect domain.Rect) {
	page, pageNumber, ok := t.ctx.Surface.PageAt(t.dragStart)
	if !ok {
		t.ctx.Logger.Debug("selection outside any page, discarded")
		return
	}
	raster, ok := t.ctx.Surface.PageRaster(pageNumber)
	if !ok {
		t.ctx.Logger.Warn("no raster for page %d: %v", pageNumber, domain.ErrRenderTargetMissing)
		return
	}

	layout := page.Bounds()
	sx := float64(raster.Bounds().Dx()) / layout.Width
	sy := float64(raster.Bounds().Dy()) / layout.Height
	pageRect := domain.Rect{
		X:      (viewportRect.X - layout.X) * sx,
		Y:      (viewportRect.Y - layout.Y) * sy,
		Width:  viewportRect.Width * sx,
		Height: viewportRect.Height * sy,
	}

	region, clamped, err := ExtractRegion(raster, pageRect)
	if err != nil {
		t.ctx.Logger.Debug("capture discarded: %v", err)
		return
	}

	description, ok := t.ctx.Prompter.PromptDescription(context.Background())
	if !ok {
		t.ctx.Logger.Debug("capture cancelled at description prompt")
		return
	}

	saved, err := t.ctx.Images.SaveImage(context.Background(), region)
	if err != nil {
		t.ctx.Logger.Error("saving capture: %v", err)
		t.ctx.Bus.Emit(domain.EventNotification, domain.NotificationEvent{
			Level:   domain.NotifyError,
			Message: fmt.Sprintf("failed to save screenshot: %v", err),
		})
		return
	}

	t.ctx.Bus.Emit(domain.EventAnnotationCreateRequested, domain.CreateAnnotationRequest{
		Type:       domain.TypeScreenshot,
		PageNumber: pageNumber,
		Data: domain.ScreenshotData{
			Rect:        clamped,
			ImagePath:   saved.Path,
			ImageHash:   saved.Hash,
			Description: description,
		},
	})
}

func (t *Tool) resetSelection() {
	t.dragging = false
	if t.selection != nil {
		t.selection.Detach()
		t.selection = nil
	}
}

// buildMarker constructs a detached frame node over the captured region,
// mapping the capture-time raster rect back into viewport coordinates.
func (t *Tool) buildMarker(a domain.Annotation) driven.Node {
	n := t.ctx.Surface.CreateNode("screenshot-marker")
	d, ok := a.Data.(domain.ScreenshotData)
	if !ok {
		return n
	}
	page, ok := t.ctx.Surface.Page(a.PageNumber)
	if !ok {
		return n
	}
	layout := page.Bounds()
	raster, ok := t.ctx.Surface.PageRaster(a.PageNumber)
	sx, sy := 1.0, 1.0
	if ok {
		sx = layout.Width / float64(raster.Bounds().Dx())
		sy = layout.Height / float64(raster.Bounds().Dy())
	}
	n.SetBounds(domain.Rect{
		X:      layout.X + d.Rect.X*sx,
		Y:      layout.Y + d.Rect.Y*sy,
		Width:  d.Rect.Width * sx,
		Height: d.Rect.Height * sy,
	})
	return n
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
