// Package sidebar implements the annotations sidebar panel: an event-fed
// card list mirroring the canonical annotation set. The panel never reads
// the store; cards appear, change and disappear only in response to the
// canonical created, updated and deleted events, so the list can never
// show an annotation that failed persistence.
package sidebar

import (
	"fmt"
	"sync"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

// CardBuilder renders an annotation into its sidebar card. Tools register
// theirs so each card matches its owning tool's presentation.
type CardBuilder func(domain.Annotation) driving.AnnotationCard

// Panel is the annotations sidebar panel.
type Panel struct {
	bus    driven.Bus
	logger driven.Logger

	mu       sync.Mutex
	open     bool
	entries  []domain.Annotation
	selected string
	builders map[domain.AnnotationType]CardBuilder

	unsubs []func()
}

// New creates the panel and installs its event subscriptions.
func New(b driven.Bus, logger driven.Logger) *Panel {
	p := &Panel{
		bus:      b,
		logger:   logger,
		builders: make(map[domain.AnnotationType]CardBuilder),
	}
	p.unsubs = append(p.unsubs,
		b.Subscribe(domain.EventAnnotationCreated, p.onCreated),
		b.Subscribe(domain.EventAnnotationUpdated, p.onUpdated),
		b.Subscribe(domain.EventAnnotationDeleted, p.onDeleted),
		b.Subscribe(domain.EventSidebarOpenRequested, p.onOpenRequested),
		b.Subscribe(domain.EventCardSelected, p.onCardSelected),
	)
	return p
}

// RegisterCardBuilder installs a tool's card renderer for an annotation
// type. Types without a builder fall back to a generic card.
func (p *Panel) RegisterCardBuilder(t domain.AnnotationType, b CardBuilder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.builders[t] = b
}

// ID returns the panel identifier.
func (p *Panel) ID() string { return domain.PanelAnnotations }

// IsOpen reports whether the panel is showing.
func (p *Panel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Close hides the panel and announces the closure. The toolbar coordinator
// reacts by force-deactivating the panel's active tool.
func (p *Panel) Close() {
	p.mu.Lock()
	if !p.open {
		p.mu.Unlock()
		return
	}
	p.open = false
	p.mu.Unlock()
	p.bus.Emit(domain.EventSidebarPanelClosed,
		domain.SidebarPanelEvent{PanelID: domain.PanelAnnotations})
}

// Cards returns the current card list, newest first.
func (p *Panel) Cards() []driving.AnnotationCard {
	p.mu.Lock()
	defer p.mu.Unlock()
	cards := make([]driving.AnnotationCard, 0, len(p.entries))
	for _, a := range p.entries {
		cards = append(cards, p.card(a))
	}
	return cards
}

// Selected returns the selected annotation id, if any.
func (p *Panel) Selected() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected, p.selected != ""
}

// SelectCard marks a card selected from the sidebar side and asks the
// owning tool to highlight the matching marker on the surface.
func (p *Panel) SelectCard(id string) {
	p.mu.Lock()
	found := false
	for _, a := range p.entries {
		if a.ID == id {
			found = true
			break
		}
	}
	if !found {
		p.mu.Unlock()
		return
	}
	p.selected = id
	p.mu.Unlock()
	p.bus.Emit(domain.EventMarkerHighlightRequested, domain.AnnotationRef{AnnotationID: id})
}

// RequestDelete emits a deletion request for a card's annotation. The card
// itself only disappears once the canonical deleted event arrives.
func (p *Panel) RequestDelete(id string) {
	p.bus.Emit(domain.EventAnnotationDeleteRequested, domain.DeleteAnnotationRequest{ID: id})
}

// Destroy removes the panel's subscriptions.
func (p *Panel) Destroy() {
	for _, u := range p.unsubs {
		u()
	}
	p.unsubs = nil
}

func (p *Panel) onCreated(payload any) {
	evt, ok := payload.(domain.AnnotationCreatedEvent)
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	// Canonical events arrive in creation order; prepending keeps the list
	// newest first.
	p.entries = append([]domain.Annotation{evt.Annotation}, p.entries...)
}

func (p *Panel) onUpdated(payload any) {
	evt, ok := payload.(domain.AnnotationUpdatedEvent)
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, a := range p.entries {
		if a.ID == evt.Annotation.ID {
			p.entries[i] = evt.Annotation
			return
		}
	}
	if p.logger != nil {
		p.logger.Warn("update for unknown card %s: %v", evt.Annotation.ID, domain.ErrNotFound)
	}
}

func (p *Panel) onDeleted(payload any) {
	evt, ok := payload.(domain.AnnotationDeletedEvent)
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, a := range p.entries {
		if a.ID == evt.Annotation.ID {
			p.entries = append(p.entries[:i:i], p.entries[i+1:]...)
			break
		}
	}
	if p.selected == evt.Annotation.ID {
		p.selected = ""
	}
}

func (p *Panel) onOpenRequested(payload any) {
	evt, ok := payload.(domain.SidebarPanelEvent)
	if !ok || evt.PanelID != domain.PanelAnnotations {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
}

// onCardSelected reacts to marker-side selection: the surface click already
// happened, the panel just mirrors it. No highlight request is emitted
// back, which keeps the selection handshake from echoing.
func (p *Panel) onCardSelected(payload any) {
	ref, ok := payload.(domain.AnnotationRef)
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = ref.AnnotationID
}

func (p *Panel) card(a domain.Annotation) driving.AnnotationCard {
	if b, ok := p.builders[a.Type]; ok {
		return b(a)
	}
	return driving.AnnotationCard{
		AnnotationID: a.ID,
		PageNumber:   a.PageNumber,
		Title:        fmt.Sprintf("%s · p.%d", a.Type, a.PageNumber),
		CommentCount: a.CommentCount(),
	}
}
