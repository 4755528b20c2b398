// Package toolbar renders the tool button strip.
package toolbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/styles"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

// Strip renders toolbar buttons in registration order.
type Strip struct {
	styles *styles.Styles
	width  int
}

// NewStrip creates a toolbar strip.
func NewStrip(s *styles.Styles) *Strip {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Strip{styles: s, width: 80}
}

// SetWidth sets the render width.
func (s *Strip) SetWidth(w int) {
	s.width = w
}

// View renders the strip for the given buttons.
func (s *Strip) View(buttons []driving.ToolButton) string {
	if len(buttons) == 0 {
		return s.styles.Muted.Render("no tools registered")
	}

	rendered := make([]string, 0, len(buttons))
	for _, b := range buttons {
		label := fmt.Sprintf("%s %s", b.Icon, b.Label)
		switch {
		case !b.Enabled:
			rendered = append(rendered, s.styles.ToolButtonDisabled.Render(label))
		case b.Active:
			rendered = append(rendered, s.styles.ToolButtonActive.Render(label))
		default:
			rendered = append(rendered, s.styles.ToolButton.Render(label))
		}
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if lipgloss.Width(strip) > s.width {
		// Fall back to bare labels when the terminal is narrow.
		labels := make([]string, 0, len(buttons))
		for _, b := range buttons {
			labels = append(labels, b.Label)
		}
		return s.styles.Normal.Render(strings.Join(labels, " | "))
	}
	return strip
}
