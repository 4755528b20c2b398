package sidebar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark-labs/pagemark/internal/bus"
	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

func newPanel(t *testing.T) (*bus.Bus, *Panel) {
	t.Helper()
	b := bus.New()
	p := New(b, nopLogger{})
	t.Cleanup(p.Destroy)
	return b, p
}

func annotation(id string, page int) domain.Annotation {
	return domain.Annotation{
		ID:         id,
		Type:       domain.TypeComment,
		PageNumber: page,
		Data:       domain.CommentData{Position: domain.Point{X: 1, Y: 2}, Content: "note " + id},
		CreatedAt:  time.Now(),
	}
}

func emitCreated(b *bus.Bus, a domain.Annotation) {
	b.Emit(domain.EventAnnotationCreated, domain.AnnotationCreatedEvent{Annotation: a})
}

func TestCards_NewestFirst(t *testing.T) {
	b, p := newPanel(t)

	emitCreated(b, annotation("a", 1))
	emitCreated(b, annotation("b", 2))
	emitCreated(b, annotation("c", 3))

	cards := p.Cards()
	require.Len(t, cards, 3)
	assert.Equal(t, "c", cards[0].AnnotationID)
	assert.Equal(t, "b", cards[1].AnnotationID)
	assert.Equal(t, "a", cards[2].AnnotationID)
}

func TestCards_OnlyCanonicalEventsAddCards(t *testing.T) {
	b, p := newPanel(t)

	// A raw creation request is a tool intent, not a persisted annotation.
	b.Emit(domain.EventAnnotationCreateRequested, domain.CreateAnnotationRequest{
		Type:       domain.TypeComment,
		PageNumber: 1,
		Data:       domain.CommentData{Content: "not persisted yet"},
	})

	assert.Empty(t, p.Cards())
}

func TestCards_UpdateReplacesInPlace(t *testing.T) {
	b, p := newPanel(t)
	emitCreated(b, annotation("a", 1))
	emitCreated(b, annotation("b", 2))

	updated := annotation("a", 1)
	updated.Comments = []domain.Comment{{ID: "c1", Content: "reply"}}
	b.Emit(domain.EventAnnotationUpdated, domain.AnnotationUpdatedEvent{Annotation: updated})

	cards := p.Cards()
	require.Len(t, cards, 2)
	// Order is unchanged; only the comment count moved.
	assert.Equal(t, "b", cards[0].AnnotationID)
	assert.Equal(t, "a", cards[1].AnnotationID)
	assert.Equal(t, 1, cards[1].CommentCount)
}

func TestCards_DeletedEventRemovesCard(t *testing.T) {
	b, p := newPanel(t)
	a := annotation("a", 1)
	emitCreated(b, a)
	emitCreated(b, annotation("b", 2))

	b.Emit(domain.EventAnnotationDeleted, domain.AnnotationDeletedEvent{Annotation: a})

	cards := p.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "b", cards[0].AnnotationID)
}

func TestCards_ToolBuilderShapesCard(t *testing.T) {
	b, p := newPanel(t)
	p.RegisterCardBuilder(domain.TypeComment, func(a domain.Annotation) driving.AnnotationCard {
		return driving.AnnotationCard{
			AnnotationID: a.ID,
			PageNumber:   a.PageNumber,
			Title:        fmt.Sprintf("Comment · p.%d", a.PageNumber),
			Body:         a.Data.(domain.CommentData).Content,
		}
	})

	emitCreated(b, annotation("a", 7))

	cards := p.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "Comment · p.7", cards[0].Title)
	assert.Equal(t, "note a", cards[0].Body)
}

func TestSelection_MarkerClickSelectsCardWithoutEcho(t *testing.T) {
	b, p := newPanel(t)
	emitCreated(b, annotation("a", 1))

	highlights := 0
	b.Subscribe(domain.EventMarkerHighlightRequested, func(any) { highlights++ })

	b.Emit(domain.EventCardSelected, domain.AnnotationRef{AnnotationID: "a"})

	id, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", id)
	assert.Zero(t, highlights, "marker-side selection must not bounce a highlight request back")
}

func TestSelection_CardClickRequestsMarkerHighlight(t *testing.T) {
	b, p := newPanel(t)
	emitCreated(b, annotation("a", 1))

	var refs []string
	b.Subscribe(domain.EventMarkerHighlightRequested, func(payload any) {
		refs = append(refs, payload.(domain.AnnotationRef).AnnotationID)
	})

	p.SelectCard("a")

	assert.Equal(t, []string{"a"}, refs)
	id, _ := p.Selected()
	assert.Equal(t, "a", id)
}

func TestSelection_UnknownCardIgnored(t *testing.T) {
	b, p := newPanel(t)

	emitted := false
	b.Subscribe(domain.EventMarkerHighlightRequested, func(any) { emitted = true })

	p.SelectCard("ghost")

	assert.False(t, emitted)
	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestSelection_ClearedWhenAnnotationDeleted(t *testing.T) {
	b, p := newPanel(t)
	a := annotation("a", 1)
	emitCreated(b, a)
	p.SelectCard("a")

	b.Emit(domain.EventAnnotationDeleted, domain.AnnotationDeletedEvent{Annotation: a})

	_, ok := p.Selected()
	assert.False(t, ok)
}

func TestPanel_OpenRequestOpensAnnotationsPanelOnly(t *testing.T) {
	b, p := newPanel(t)
	require.False(t, p.IsOpen())

	b.Emit(domain.EventSidebarOpenRequested, domain.SidebarPanelEvent{PanelID: "outline"})
	assert.False(t, p.IsOpen())

	b.Emit(domain.EventSidebarOpenRequested, domain.SidebarPanelEvent{PanelID: domain.PanelAnnotations})
	assert.True(t, p.IsOpen())
}

func TestPanel_CloseAnnouncesClosure(t *testing.T) {
	b, p := newPanel(t)
	b.Emit(domain.EventSidebarOpenRequested, domain.SidebarPanelEvent{PanelID: domain.PanelAnnotations})

	var closed []string
	b.Subscribe(domain.EventSidebarPanelClosed, func(payload any) {
		closed = append(closed, payload.(domain.SidebarPanelEvent).PanelID)
	})

	p.Close()
	assert.Equal(t, []string{domain.PanelAnnotations}, closed)
	assert.False(t, p.IsOpen())

	// Closing an already closed panel announces nothing.
	p.Close()
	assert.Len(t, closed, 1)
}

func TestRequestDelete_EmitsDeletionIntent(t *testing.T) {
	b, p := newPanel(t)
	emitCreated(b, annotation("a", 1))

	var ids []string
	b.Subscribe(domain.EventAnnotationDeleteRequested, func(payload any) {
		ids = append(ids, payload.(domain.DeleteAnnotationRequest).ID)
	})

	p.RequestDelete("a")

	assert.Equal(t, []string{"a"}, ids)
	// The card survives until the canonical deleted event lands.
	assert.Len(t, p.Cards(), 1)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
