package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

func testAnnotation(id string, page int) domain.Annotation {
	return domain.Annotation{
		ID:         id,
		Type:       domain.TypeComment,
		PageNumber: page,
		Data:       domain.CommentData{Position: domain.Point{X: 10, Y: 20}, Content: "note on " + id},
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestServer_handleListAnnotations(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the whole collection", func(t *testing.T) {
		dir := &mockDirectory{
			annotations: []domain.Annotation{
				testAnnotation("ann-1", 1),
				testAnnotation("ann-2", 3),
			},
		}

		server, err := NewServer(&Ports{Directory: dir})
		require.NoError(t, err)

		_, output, err := server.handleListAnnotations(ctx, nil, ListAnnotationsInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Annotations, 2)
		assert.Equal(t, "ann-1", output.Annotations[0].ID)
		assert.Equal(t, "comment", output.Annotations[0].Type)
		assert.Equal(t, "note on ann-1", output.Annotations[0].Summary)
	})

	t.Run("page filter uses the page view", func(t *testing.T) {
		dir := &mockDirectory{
			annotations: []domain.Annotation{testAnnotation("ann-1", 1)},
			byPage: map[int][]domain.Annotation{
				3: {testAnnotation("ann-2", 3)},
			},
		}

		server, err := NewServer(&Ports{Directory: dir})
		require.NoError(t, err)

		_, output, err := server.handleListAnnotations(ctx, nil, ListAnnotationsInput{Page: 3})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "ann-2", output.Annotations[0].ID)
	})

	t.Run("returns error on directory failure", func(t *testing.T) {
		dir := &mockDirectory{err: assert.AnError}

		server, err := NewServer(&Ports{Directory: dir})
		require.NoError(t, err)

		_, _, err = server.handleListAnnotations(ctx, nil, ListAnnotationsInput{})
		require.Error(t, err)
	})
}

func TestServer_handleGetAnnotation(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the annotation", func(t *testing.T) {
		ann := testAnnotation("ann-7", 5)
		dir := &mockDirectory{annotation: &ann}

		server, err := NewServer(&Ports{Directory: dir})
		require.NoError(t, err)

		_, output, err := server.handleGetAnnotation(ctx, nil, GetAnnotationInput{ID: "ann-7"})

		require.NoError(t, err)
		assert.Equal(t, "ann-7", output.Annotation.ID)
		assert.Equal(t, 5, output.Annotation.PageNumber)
	})

	t.Run("propagates not found", func(t *testing.T) {
		dir := &mockDirectory{err: domain.ErrNotFound}

		server, err := NewServer(&Ports{Directory: dir})
		require.NoError(t, err)

		_, _, err = server.handleGetAnnotation(ctx, nil, GetAnnotationInput{ID: "missing"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleDeleteAnnotation(t *testing.T) {
	ctx := context.Background()

	t.Run("issues the delete request", func(t *testing.T) {
		dir := &mockDirectory{}

		server, err := NewServer(&Ports{Directory: dir})
		require.NoError(t, err)

		_, output, err := server.handleDeleteAnnotation(ctx, nil, DeleteAnnotationInput{ID: "ann-3"})

		require.NoError(t, err)
		assert.True(t, output.Requested)
		assert.Equal(t, []string{"ann-3"}, dir.deleted)
	})

	t.Run("returns error for unknown id", func(t *testing.T) {
		dir := &mockDirectory{err: domain.ErrNotFound}

		server, err := NewServer(&Ports{Directory: dir})
		require.NoError(t, err)

		_, _, err = server.handleDeleteAnnotation(ctx, nil, DeleteAnnotationInput{ID: "missing"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
