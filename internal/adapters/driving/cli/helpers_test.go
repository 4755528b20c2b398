package cli

import (
	"context"
	"time"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driving"
)

// fakeDirectory is a canned driving.AnnotationDirectory for command tests.
type fakeDirectory struct {
	annotations []domain.Annotation
	byPage      map[int][]domain.Annotation
	deleted     []string
	err         error
}

var _ driving.AnnotationDirectory = (*fakeDirectory)(nil)

func (f *fakeDirectory) List(_ context.Context) ([]domain.Annotation, error) {
	return f.annotations, f.err
}

func (f *fakeDirectory) Get(_ context.Context, id string) (*domain.Annotation, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.annotations {
		if f.annotations[i].ID == id {
			return &f.annotations[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDirectory) AnnotationsByPage(pageNumber int) []domain.Annotation {
	return f.byPage[pageNumber]
}

func (f *fakeDirectory) RequestDelete(id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// setupTestServices wires canned services into the package-level command
// state and returns a cleanup function restoring the previous wiring.
func setupTestServices() (*fakeDirectory, func()) {
	created := time.Date(2026, 7, 14, 9, 30, 0, 0, time.UTC)
	dir := &fakeDirectory{
		annotations: []domain.Annotation{
			{
				ID:         "ann-1",
				Type:       domain.TypeComment,
				PageNumber: 2,
				Data:       domain.CommentData{Position: domain.Point{X: 40, Y: 80}, Content: "check this figure"},
				CreatedAt:  created,
				UpdatedAt:  created,
			},
			{
				ID:         "ann-2",
				Type:       domain.TypeTextHighlight,
				PageNumber: 5,
				Data: domain.HighlightData{
					SelectedText:   "key result",
					HighlightColor: "#ffeb3b",
					TextRanges:     []domain.TextRange{{StartNode: 1, StartOffset: 0, EndNode: 1, EndOffset: 10}},
					BoundingBox:    domain.Rect{X: 10, Y: 20, Width: 100, Height: 16},
				},
				CreatedAt: created.Add(time.Minute),
				UpdatedAt: created.Add(time.Minute),
			},
		},
		byPage: map[int][]domain.Annotation{},
	}
	dir.byPage[2] = []domain.Annotation{dir.annotations[0]}
	dir.byPage[5] = []domain.Annotation{dir.annotations[1]}

	prev := annotationDirectory
	annotationDirectory = dir

	return dir, func() {
		annotationDirectory = prev
		listPage = 0
		exportOutput = ""
	}
}
