// Package surface implements the render-surface port as an in-memory node
// graph. The real PDF rendering engine lives outside this module; the
// surface reproduces the one behavior the annotation subsystem must
// survive: page DOM being destroyed and recreated at any time, announced
// by a page-rendered event.
package surface

import (
	"fmt"
	"image"
	"sync"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Ensure Surface implements the port.
var _ driven.RenderSurface = (*Surface)(nil)

// Surface is a virtualized page surface. Pages are registered with a
// layout rect and an optional raster; rendering a page destroys any
// previous container node for it and builds a fresh one, exactly like a
// virtualizing viewer recycling DOM.
type Surface struct {
	bus driven.Bus

	mu       sync.Mutex
	root     *node
	viewport domain.Rect
	cursor   driven.CursorStyle
	pages    map[int]*node
	layouts  map[int]domain.Rect
	rasters  map[int]image.Image
	texts    map[int]string
}

// New creates a surface with the given viewport. Page-rendered events are
// emitted on b.
func New(b driven.Bus, viewport domain.Rect) *Surface {
	root := newNode("surface")
	root.root = true
	root.SetBounds(viewport)
	return &Surface{
		bus:      b,
		root:     root,
		viewport: viewport,
		cursor:   driven.CursorDefault,
		pages:    make(map[int]*node),
		layouts:  make(map[int]domain.Rect),
		rasters:  make(map[int]image.Image),
		texts:    make(map[int]string),
	}
}

// AddPage registers a page's layout and raster without rendering it.
func (s *Surface) AddPage(number int, layout domain.Rect, raster image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[number] = layout
	if raster != nil {
		s.rasters[number] = raster
	}
}

// SetPageText registers a page's extracted text layer content. The text is
// reapplied to the container on every render, surviving virtualization.
func (s *Surface) SetPageText(number int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[number] = text
}

// RenderPage destroys any existing container for the page, builds a fresh
// one and emits the page-rendered event. Anything attached to the old
// container is gone, which is what forces the restoration protocol.
func (s *Surface) RenderPage(number int) {
	s.mu.Lock()
	layout, known := s.layouts[number]
	if !known {
		s.mu.Unlock()
		return
	}
	if old, ok := s.pages[number]; ok {
		old.Detach()
	}
	page := newNode("page")
	page.Set(driven.AttrPageNumber, fmt.Sprintf("%d", number))
	if text, ok := s.texts[number]; ok {
		page.Set(driven.AttrPageText, text)
	}
	page.SetBounds(layout)
	s.root.Append(page)
	s.pages[number] = page
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Emit(domain.EventPageRendered, domain.PageRenderedEvent{PageNumber: number})
	}
}

// EvictPage simulates the page scrolling out of the virtualization window:
// the container is destroyed and nothing replaces it.
func (s *Surface) EvictPage(number int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.pages[number]; ok {
		old.Detach()
		delete(s.pages, number)
	}
}

// Root returns the surface root node.
func (s *Surface) Root() driven.Node {
	return s.root
}

// Page returns the container node for a page number, if rendered.
func (s *Surface) Page(number int) (driven.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[number]
	if !ok {
		return nil, false
	}
	return p, true
}

// PageAt hit-tests a viewport point against the rendered pages.
func (s *Surface) PageAt(pt domain.Point) (driven.Node, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for number, p := range s.pages {
		if p.Bounds().Contains(pt) {
			return p, number, true
		}
	}
	return nil, 0, false
}

// PageRaster returns the rendered raster for a page, if available.
func (s *Surface) PageRaster(number int) (image.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.rasters[number]
	return img, ok
}

// Viewport returns the visible viewport rect.
func (s *Surface) Viewport() domain.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// CreateNode makes a new detached node of the given kind.
func (s *Surface) CreateNode(kind string) driven.Node {
	return newNode(kind)
}

// Cursor returns the current pointer affordance.
func (s *Surface) Cursor() driven.CursorStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// SetCursor changes the pointer affordance.
func (s *Surface) SetCursor(c driven.CursorStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = c
}
