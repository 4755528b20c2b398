package toolbar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

func TestStrip_RendersButtonsInOrder(t *testing.T) {
	s := NewStrip(nil)
	s.SetWidth(120)

	out := s.View([]driving.ToolButton{
		{Name: "comment", Label: "Comment", Icon: "💬", Enabled: true},
		{Name: "screenshot", Label: "Screenshot", Icon: "📷", Enabled: true, Active: true},
		{Name: "highlight", Label: "Highlight", Icon: "🖍", Enabled: false},
	})

	assert.Contains(t, out, "Comment")
	assert.Contains(t, out, "Screenshot")
	assert.Contains(t, out, "Highlight")
}

func TestStrip_EmptyToolbar(t *testing.T) {
	s := NewStrip(nil)
	assert.Contains(t, s.View(nil), "no tools registered")
}
