package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

func sampleCards() []driving.AnnotationCard {
	return []driving.AnnotationCard{
		{AnnotationID: "c", Title: "Comment · p.3", Body: "newest"},
		{AnnotationID: "b", Title: "Screenshot · p.2", CommentCount: 2},
		{AnnotationID: "a", Title: "Highlight · p.1"},
	}
}

func TestList_CursorNavigation(t *testing.T) {
	l := NewList(nil)
	l.SetCards(sampleCards())

	cur, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.AnnotationID)

	l.MoveDown()
	cur, _ = l.Current()
	assert.Equal(t, "b", cur.AnnotationID)

	l.MoveUp()
	l.MoveUp() // clamped at top
	cur, _ = l.Current()
	assert.Equal(t, "c", cur.AnnotationID)
}

func TestList_SelectByID(t *testing.T) {
	l := NewList(nil)
	l.SetCards(sampleCards())

	l.Select("a")
	cur, _ := l.Current()
	assert.Equal(t, "a", cur.AnnotationID)

	l.Select("missing")
	cur, _ = l.Current()
	assert.Equal(t, "a", cur.AnnotationID, "unknown id leaves the cursor alone")
}

func TestList_CursorClampsWhenCardsShrink(t *testing.T) {
	l := NewList(nil)
	l.SetCards(sampleCards())
	l.Select("a")

	l.SetCards(sampleCards()[:1])
	cur, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.AnnotationID)
}

func TestList_ViewShowsCommentCount(t *testing.T) {
	l := NewList(nil)
	l.SetCards(sampleCards())

	out := l.View()
	assert.Contains(t, out, "Screenshot · p.2 (2)")
}

func TestList_EmptyView(t *testing.T) {
	l := NewList(nil)
	assert.Contains(t, l.View(), "no annotations yet")

	_, ok := l.Current()
	assert.False(t, ok)
}
