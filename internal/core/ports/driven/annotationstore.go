package driven

import (
	"context"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

// AnnotationStore persists canonical annotation records. The store is
// exclusively owned by the persistence collaborator; tools and the sidebar
// never reach it directly.
type AnnotationStore interface {
	// Save inserts a new annotation. Returns domain.ErrAlreadyExists on an
	// id collision.
	Save(ctx context.Context, a *domain.Annotation) error

	// Update replaces an existing annotation. Returns domain.ErrNotFound
	// if the id is unknown.
	Update(ctx context.Context, a *domain.Annotation) error

	// Get retrieves an annotation by id.
	Get(ctx context.Context, id string) (*domain.Annotation, error)

	// Delete removes an annotation by id.
	Delete(ctx context.Context, id string) error

	// ListByPage returns all annotations on a page, oldest first.
	ListByPage(ctx context.Context, pageNumber int) ([]domain.Annotation, error)

	// List returns the whole collection, oldest first.
	List(ctx context.Context) ([]domain.Annotation, error)
}

// AnnotationQuerier is the synchronous annotation-query capability handed
// to tools. Restoration reads a consistent snapshot of "annotations on that
// page" at the instant it runs.
type AnnotationQuerier interface {
	// AnnotationsByPage returns the current annotations on a page, oldest
	// first.
	AnnotationsByPage(pageNumber int) []domain.Annotation
}
