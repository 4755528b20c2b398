package comment

import (
	"strings"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Editor dimensions in pixels. The editor is clamped so its full bounding
// box stays inside the viewport.
const (
	editorWidth  = 260
	editorHeight = 140
)

// Editor is the transient floating text editor opened by a comment click.
// Only one instance may be open at a time; the tool enforces that.
type Editor struct {
	node       driven.Node
	pageNumber int
	anchor     domain.Point
	content    string
}

// newEditor attaches a floating editor node at the pointer's viewport
// position, clamped to the viewport, and remembers the page-local anchor
// the eventual annotation will carry.
func newEditor(surf driven.RenderSurface, pageNumber int, anchor, viewport domain.Point) *Editor {
	pos := domain.ClampPointTo(viewport, editorWidth, editorHeight, surf.Viewport())
	n := surf.CreateNode("comment-editor")
	n.SetBounds(domain.Rect{X: pos.X, Y: pos.Y, Width: editorWidth, Height: editorHeight})
	surf.Root().Append(n)
	return &Editor{
		node:       n,
		pageNumber: pageNumber,
		anchor:     anchor,
	}
}

// PageNumber returns the page the editor was opened on.
func (e *Editor) PageNumber() int { return e.pageNumber }

// Anchor returns the page-local position the annotation will carry.
func (e *Editor) Anchor() domain.Point { return e.anchor }

// Bounds returns the editor's viewport-clamped bounding box.
func (e *Editor) Bounds() domain.Rect { return e.node.Bounds() }

// SetContent replaces the editor text.
func (e *Editor) SetContent(s string) { e.content = s }

// Content returns the raw editor text.
func (e *Editor) Content() string { return e.content }

// TrimmedContent returns the trimmed text and whether it is non-empty.
func (e *Editor) TrimmedContent() (string, bool) {
	s := strings.TrimSpace(e.content)
	return s, s != ""
}

func (e *Editor) dispose() {
	e.node.Detach()
}
