// Package cards renders the sidebar's annotation card list with cursor
// navigation.
package cards

import (
	"fmt"
	"strings"

	"github.com/pagemark-labs/pagemark/internal/adapters/driving/tui/styles"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

// List is the navigable card list.
type List struct {
	styles *styles.Styles
	cards  []driving.AnnotationCard
	cursor int
	height int
}

// NewList creates an empty card list.
func NewList(s *styles.Styles) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &List{styles: s, height: 20}
}

// SetHeight sets the number of visible rows.
func (l *List) SetHeight(h int) {
	l.height = h
}

// SetCards replaces the card set, clamping the cursor.
func (l *List) SetCards(cards []driving.AnnotationCard) {
	l.cards = cards
	if l.cursor >= len(cards) {
		l.cursor = len(cards) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// Select moves the cursor to the card with the given annotation id.
func (l *List) Select(annotationID string) {
	for i, c := range l.cards {
		if c.AnnotationID == annotationID {
			l.cursor = i
			return
		}
	}
}

// MoveUp moves the cursor up one card.
func (l *List) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down one card.
func (l *List) MoveDown() {
	if l.cursor < len(l.cards)-1 {
		l.cursor++
	}
}

// Current returns the card under the cursor.
func (l *List) Current() (driving.AnnotationCard, bool) {
	if len(l.cards) == 0 {
		return driving.AnnotationCard{}, false
	}
	return l.cards[l.cursor], true
}

// View renders the list.
func (l *List) View() string {
	if len(l.cards) == 0 {
		return l.styles.Muted.Render("no annotations yet")
	}

	var b strings.Builder
	for i, c := range l.cards {
		if i >= l.height {
			b.WriteString(l.styles.Muted.Render(fmt.Sprintf("… %d more", len(l.cards)-l.height)))
			break
		}
		line := c.Title
		if c.CommentCount > 0 {
			line = fmt.Sprintf("%s (%d)", line, c.CommentCount)
		}
		if i == l.cursor {
			b.WriteString(l.styles.CardSelected.Render("▶ " + line))
		} else {
			b.WriteString(l.styles.Card.Render("  " + line))
		}
		b.WriteString("\n")
		if c.Body != "" && i == l.cursor {
			b.WriteString(l.styles.Muted.Render("    " + c.Body))
			b.WriteString("\n")
		}
	}
	return b.String()
}
