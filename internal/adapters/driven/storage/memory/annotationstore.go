// Package memory provides in-memory implementations of the driven storage
// ports, used by the shell before a data directory is configured and as
// fakes in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of
// driven.AnnotationStore.
type AnnotationStore struct {
	mu          sync.RWMutex
	annotations map[string]domain.Annotation
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		annotations: make(map[string]domain.Annotation),
	}
}

// Save inserts a new annotation.
func (s *AnnotationStore) Save(ctx context.Context, a *domain.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.annotations[a.ID]; exists {
		return domain.ErrAlreadyExists
	}
	s.annotations[a.ID] = *a
	return nil
}

// Update replaces an existing annotation.
func (s *AnnotationStore) Update(ctx context.Context, a *domain.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.annotations[a.ID]; !exists {
		return domain.ErrNotFound
	}
	s.annotations[a.ID] = *a
	return nil
}

// Get retrieves an annotation by id.
func (s *AnnotationStore) Get(ctx context.Context, id string) (*domain.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.annotations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// Delete removes an annotation by id.
func (s *AnnotationStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.annotations, id)
	return nil
}

// ListByPage returns all annotations on a page, oldest first.
func (s *AnnotationStore) ListByPage(ctx context.Context, pageNumber int) ([]domain.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Annotation
	for _, a := range s.annotations {
		if a.PageNumber == pageNumber {
			out = append(out, a)
		}
	}
	sortByCreation(out)
	return out, nil
}

// List returns the whole collection, oldest first.
func (s *AnnotationStore) List(ctx context.Context) ([]domain.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Annotation, 0, len(s.annotations))
	for _, a := range s.annotations {
		out = append(out, a)
	}
	sortByCreation(out)
	return out, nil
}

func sortByCreation(list []domain.Annotation) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
