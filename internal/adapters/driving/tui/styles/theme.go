// Package styles provides colour themes and styling for the shell.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the shell.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Highlight marks the active tool and the selected card.
	Highlight lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
		Highlight:  lipgloss.Color("#F9E2AF"), // Yellow
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// ToolButton renders an enabled, inactive toolbar button.
	ToolButton lipgloss.Style

	// ToolButtonActive renders the active tool's button.
	ToolButtonActive lipgloss.Style

	// ToolButtonDisabled renders a degraded tool's inert button.
	ToolButtonDisabled lipgloss.Style

	// Card renders a sidebar card.
	Card lipgloss.Style

	// CardSelected renders the selected sidebar card.
	CardSelected lipgloss.Style

	// NotifyInfo, NotifyWarn and NotifyError render the status line.
	NotifyInfo  lipgloss.Style
	NotifyWarn  lipgloss.Style
	NotifyError lipgloss.Style

	// Panel frames the sidebar.
	Panel lipgloss.Style
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// NewStyles builds the style set from a theme.
func NewStyles(t *Theme) *Styles {
	if t == nil {
		t = DefaultTheme()
	}
	return &Styles{
		theme: t,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Normal: lipgloss.NewStyle().
			Foreground(t.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),
		ToolButton: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(t.Foreground),
		ToolButtonActive: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(t.Highlight).
			Underline(true),
		ToolButtonDisabled: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(t.Muted).
			Strikethrough(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(t.Foreground),
		CardSelected: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(t.Highlight),
		NotifyInfo: lipgloss.NewStyle().
			Foreground(t.Muted),
		NotifyWarn: lipgloss.NewStyle().
			Foreground(t.Warning),
		NotifyError: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Error),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}

// Theme returns the theme the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
