package mcp

import (
	"context"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

// mockDirectory is a mock implementation of driving.AnnotationDirectory.
type mockDirectory struct {
	annotations []domain.Annotation
	annotation  *domain.Annotation
	byPage      map[int][]domain.Annotation
	deleted     []string
	err         error
}

var _ driving.AnnotationDirectory = (*mockDirectory)(nil)

func (m *mockDirectory) List(_ context.Context) ([]domain.Annotation, error) {
	return m.annotations, m.err
}

func (m *mockDirectory) Get(_ context.Context, _ string) (*domain.Annotation, error) {
	return m.annotation, m.err
}

func (m *mockDirectory) AnnotationsByPage(pageNumber int) []domain.Annotation {
	return m.byPage[pageNumber]
}

func (m *mockDirectory) RequestDelete(id string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}
