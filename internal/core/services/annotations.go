package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

// DefaultSaveTimeout bounds a persistence round trip. A save that has not
// settled by then is treated as failed.
const DefaultSaveTimeout = 10 * time.Second

// Ensure AnnotationService implements its ports.
var (
	_ driven.AnnotationQuerier   = (*AnnotationService)(nil)
	_ driving.AnnotationDirectory = (*AnnotationService)(nil)
)

// AnnotationService is the persistence collaborator. It exclusively owns
// the annotation collection: it validates incoming request events, assigns
// canonical ids, stores records and emits the canonical
// created/updated/deleted events everything else rebuilds from. Tools and
// the sidebar only read via the query capability and issue request events.
type AnnotationService struct {
	store   driven.AnnotationStore
	bus     driven.Bus
	log     driven.Logger
	timeout time.Duration

	// snapshot mirrors the store so the query capability is a synchronous
	// read. The service is the only writer.
	mu     sync.RWMutex
	byID   map[string]domain.Annotation
	unsubs []func()
}

// NewAnnotationService creates the persistence collaborator, primes the
// snapshot from the store and subscribes to the request events. A zero
// timeout selects DefaultSaveTimeout.
func NewAnnotationService(
	store driven.AnnotationStore,
	b driven.Bus,
	log driven.Logger,
	timeout time.Duration,
) (*AnnotationService, error) {
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	s := &AnnotationService{
		store:   store,
		bus:     b,
		log:     log,
		timeout: timeout,
		byID:    make(map[string]domain.Annotation),
	}

	existing, err := store.List(context.Background())
	if err != nil {
		return nil, fmt.Errorf("priming annotation snapshot: %w", err)
	}
	for _, a := range existing {
		s.byID[a.ID] = a
	}

	s.unsubs = append(s.unsubs,
		b.Subscribe(domain.EventAnnotationCreateRequested, s.onCreateRequested),
		b.Subscribe(domain.EventAnnotationUpdateRequested, s.onUpdateRequested),
		b.Subscribe(domain.EventAnnotationDeleteRequested, s.onDeleteRequested),
	)
	return s, nil
}

// Close removes the service's bus subscriptions.
func (s *AnnotationService) Close() {
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
}

// AnnotationsByPage returns a synchronous snapshot of the annotations on a
// page, oldest first.
func (s *AnnotationService) AnnotationsByPage(pageNumber int) []domain.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Annotation
	for _, a := range s.byID {
		if a.PageNumber == pageNumber {
			out = append(out, a)
		}
	}
	sortByCreation(out)
	return out
}

// List returns the whole collection, oldest first.
func (s *AnnotationService) List(_ context.Context) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Annotation, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, a)
	}
	sortByCreation(out)
	return out, nil
}

// Get retrieves one annotation by id.
func (s *AnnotationService) Get(_ context.Context, id string) (*domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// RequestDelete issues a delete request through the regular event flow.
func (s *AnnotationService) RequestDelete(id string) error {
	s.mu.RLock()
	_, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}
	s.bus.Emit(domain.EventAnnotationDeleteRequested, domain.DeleteAnnotationRequest{ID: id})
	return nil
}

// onCreateRequested validates and canonicalizes a creation request. On
// success the created event carries the full canonical record; on failure
// only a notification fires, so no marker or card is ever added.
func (s *AnnotationService) onCreateRequested(payload any) {
	req, ok := payload.(domain.CreateAnnotationRequest)
	if !ok {
		s.log.Error("create request with unexpected payload %T", payload)
		return
	}

	now := time.Now()
	a := domain.Annotation{
		ID:         uuid.NewString(),
		Type:       req.Type,
		PageNumber: req.PageNumber,
		Data:       req.Data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := a.Validate(); err != nil {
		s.log.Warn("rejecting creation request: %v", err)
		s.notifyError("annotation rejected: %v", err)
		return
	}

	if err := s.withTimeout(func(ctx context.Context) error {
		return s.store.Save(ctx, &a)
	}); err != nil {
		s.log.Error("saving annotation: %v", err)
		s.notifyError("failed to save annotation: %v", err)
		return
	}

	s.mu.Lock()
	s.byID[a.ID] = a
	s.mu.Unlock()

	s.log.Info("annotation %s created on page %d", a.ID, a.PageNumber)
	s.bus.Emit(domain.EventAnnotationCreated, domain.AnnotationCreatedEvent{Annotation: a})
}

// onUpdateRequested applies a payload replacement and/or appends a
// sub-comment, then emits the updated record.
func (s *AnnotationService) onUpdateRequested(payload any) {
	req, ok := payload.(domain.UpdateAnnotationRequest)
	if !ok {
		s.log.Error("update request with unexpected payload %T", payload)
		return
	}

	s.mu.RLock()
	a, ok := s.byID[req.ID]
	s.mu.RUnlock()
	if !ok {
		s.log.Warn("update request for unknown annotation %s", req.ID)
		s.notifyError("annotation %s not found", req.ID)
		return
	}

	if req.Data != nil {
		if req.Data.Type() != a.Type {
			s.log.Warn("update request payload type mismatch for %s", req.ID)
			s.notifyError("annotation update rejected: payload type mismatch")
			return
		}
		if err := req.Data.Validate(); err != nil {
			s.log.Warn("rejecting update request: %v", err)
			s.notifyError("annotation update rejected: %v", err)
			return
		}
		a.Data = req.Data
	}
	if req.NewComment != "" {
		a.Comments = append(a.Comments, domain.Comment{
			ID:        uuid.NewString(),
			Content:   req.NewComment,
			CreatedAt: time.Now(),
		})
	}
	a.UpdatedAt = time.Now()

	if err := s.withTimeout(func(ctx context.Context) error {
		return s.store.Update(ctx, &a)
	}); err != nil {
		s.log.Error("updating annotation %s: %v", req.ID, err)
		s.notifyError("failed to update annotation: %v", err)
		return
	}

	s.mu.Lock()
	s.byID[a.ID] = a
	s.mu.Unlock()

	s.bus.Emit(domain.EventAnnotationUpdated, domain.AnnotationUpdatedEvent{Annotation: a})
}

// onDeleteRequested removes the record and emits it as it was at deletion.
func (s *AnnotationService) onDeleteRequested(payload any) {
	req, ok := payload.(domain.DeleteAnnotationRequest)
	if !ok {
		s.log.Error("delete request with unexpected payload %T", payload)
		return
	}

	s.mu.RLock()
	a, ok := s.byID[req.ID]
	s.mu.RUnlock()
	if !ok {
		s.log.Warn("delete request for unknown annotation %s", req.ID)
		return
	}

	if err := s.withTimeout(func(ctx context.Context) error {
		return s.store.Delete(ctx, req.ID)
	}); err != nil {
		s.log.Error("deleting annotation %s: %v", req.ID, err)
		s.notifyError("failed to delete annotation: %v", err)
		return
	}

	s.mu.Lock()
	delete(s.byID, req.ID)
	s.mu.Unlock()

	s.bus.Emit(domain.EventAnnotationDeleted, domain.AnnotationDeletedEvent{Annotation: a})
}

// withTimeout runs a store call under the configured save timeout. There
// is no cooperative cancellation beyond it: once a save starts, only the
// deadline can end it early.
func (s *AnnotationService) withTimeout(fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	err := fn(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrSaveTimeout
	}
	return err
}

func (s *AnnotationService) notifyError(format string, args ...any) {
	s.bus.Emit(domain.EventNotification, domain.NotificationEvent{
		Level:   domain.NotifyError,
		Message: fmt.Sprintf(format, args...),
	})
}

func sortByCreation(list []domain.Annotation) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
