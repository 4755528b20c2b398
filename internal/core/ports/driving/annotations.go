package driving

import (
	"context"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

// AnnotationDirectory is the read/delete surface other subsystems (CLI,
// MCP server) use to reach the annotation collection. Mutations still flow
// through request events; this port never bypasses canonicalization.
type AnnotationDirectory interface {
	// List returns the whole collection, oldest first.
	List(ctx context.Context) ([]domain.Annotation, error)

	// Get retrieves one annotation by id.
	Get(ctx context.Context, id string) (*domain.Annotation, error)

	// AnnotationsByPage returns the current annotations on a page.
	AnnotationsByPage(pageNumber int) []domain.Annotation

	// RequestDelete issues a delete request for an annotation. The
	// deleted event fires only after the store has settled.
	RequestDelete(id string) error
}
