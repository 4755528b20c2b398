package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// handleMouse bridges terminal mouse input onto the bus as surface pointer
// events. Terminal cells are scaled to the surface viewport so tools see the
// same coordinate space the rendering engine reports.
func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.ready || a.promptActive {
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		a.mouseDown = true
		a.mouseStartX, a.mouseStartY = msg.X, msg.Y
		a.mouseStart = a.surfacePoint(msg.X, msg.Y)
		a.ports.Logger.Debug("pointer down at %.0f,%.0f", a.mouseStart.X, a.mouseStart.Y)
		a.ports.Bus.Emit(domain.EventPointerDown, domain.PointerEvent{Position: a.mouseStart})

	case tea.MouseActionMotion:
		if !a.mouseDown {
			return a, nil
		}
		a.ports.Bus.Emit(domain.EventPointerMove,
			domain.PointerEvent{Position: a.surfacePoint(msg.X, msg.Y)})

	case tea.MouseActionRelease:
		if !a.mouseDown {
			return a, nil
		}
		a.mouseDown = false
		end := a.surfacePoint(msg.X, msg.Y)
		a.ports.Bus.Emit(domain.EventPointerUp, domain.PointerEvent{Position: end})
		if msg.X == a.mouseStartX && msg.Y == a.mouseStartY {
			a.ports.Bus.Emit(domain.EventPointerClick, domain.PointerEvent{Position: end})
			return a, nil
		}
		a.emitTextSelection(a.mouseStart, end)
	}
	return a, nil
}

// emitTextSelection synthesizes a text-layer selection from a completed drag
// while the highlight tool is active. The terminal stand-in has no glyph
// layout, so a drag selects the page's whole text layer and the drag extent
// becomes the bounding box, translated to page-local pixels.
func (a *App) emitTextSelection(start, end domain.Point) {
	active, ok := a.ports.Toolbar.ActiveTool()
	if !ok || active.Name() != "highlight" {
		return
	}
	page, pageNumber, ok := a.ports.Surface.PageAt(start)
	if !ok {
		a.ports.Logger.Debug("selection outside any rendered page")
		return
	}
	text := strings.TrimSpace(page.Get(driven.AttrPageText))
	if text == "" {
		a.ports.Logger.Debug("page %d has no text layer", pageNumber)
		return
	}
	origin := page.Bounds().Origin()
	box := domain.BoundingBox(start, end)
	a.ports.Bus.Emit(domain.EventTextSelected, domain.TextSelectionEvent{
		PageNumber:  pageNumber,
		Text:        text,
		Ranges:      []domain.TextRange{{EndOffset: len(text)}},
		BoundingBox: box.Translate(-origin.X, -origin.Y),
	})
}

// surfacePoint maps a terminal cell to surface viewport coordinates.
func (a *App) surfacePoint(x, y int) domain.Point {
	vp := a.ports.Surface.Viewport()
	if a.width <= 0 || a.height <= 0 {
		return domain.Point{X: float64(x), Y: float64(y)}
	}
	return domain.Point{
		X: vp.X + float64(x)*vp.Width/float64(a.width),
		Y: vp.Y + float64(y)*vp.Height/float64(a.height),
	}
}
