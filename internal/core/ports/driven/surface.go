package driven

import (
	"image"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

// Attribute keys used on surface nodes.
const (
	// AttrAnnotationID links a marker node to its annotation.
	AttrAnnotationID = "annotationId"

	// AttrPageNumber marks a page container with its page number.
	AttrPageNumber = "pageNumber"

	// AttrHighlighted flags a marker as visually highlighted.
	AttrHighlighted = "highlighted"

	// AttrPageText carries a page container's extracted text layer content.
	AttrPageText = "text"
)

// CursorStyle is the pointer affordance shown over the surface.
type CursorStyle string

const (
	CursorDefault   CursorStyle = "default"
	CursorCrosshair CursorStyle = "crosshair"
	CursorText      CursorStyle = "text"
)

// Node is one element in the render surface's node graph. It stands in for
// a DOM element so the restoration protocol can be exercised without a
// browser.
type Node interface {
	// Kind returns the node's element kind ("page", "marker", ...).
	Kind() string

	// Parent returns the parent node, or nil if detached.
	Parent() Node

	// Append attaches child under this node, detaching it from any
	// previous parent first.
	Append(child Node)

	// Detach removes this node from its parent. Detaching an already
	// detached node is a no-op.
	Detach()

	// Attached reports whether the node has a live parent chain ending at
	// the surface root. A node whose page container was destroyed by
	// virtualization reports false even if it still holds a stale parent
	// reference chain.
	Attached() bool

	// Get returns a dataset attribute, or "" if unset.
	Get(attr string) string

	// Set stores a dataset attribute.
	Set(attr, value string)

	// Bounds returns the node's bounding rect in viewport coordinates.
	Bounds() domain.Rect

	// SetBounds positions the node.
	SetBounds(domain.Rect)

	// Children returns the current child nodes.
	Children() []Node
}

// RenderSurface abstracts the virtualized PDF page surface. Page DOM can be
// destroyed and recreated at any time outside the tools' control; tools
// only ever reach the surface through this port.
type RenderSurface interface {
	// Root returns the surface root node. Floating overlays (the comment
	// editor, selection rectangles) attach here.
	Root() Node

	// Page returns the container node for a page number, if that page is
	// currently rendered.
	Page(number int) (Node, bool)

	// PageAt hit-tests a viewport point against the rendered pages and
	// returns the containing page node and its number.
	PageAt(p domain.Point) (Node, int, bool)

	// PageRaster returns the rendered raster for a page, if available.
	PageRaster(number int) (image.Image, bool)

	// Viewport returns the visible viewport rect.
	Viewport() domain.Rect

	// CreateNode makes a new detached node of the given kind.
	CreateNode(kind string) Node

	// Cursor returns the current pointer affordance.
	Cursor() CursorStyle

	// SetCursor changes the pointer affordance. Tools restore the prior
	// cursor on deactivation.
	SetCursor(CursorStyle)
}
