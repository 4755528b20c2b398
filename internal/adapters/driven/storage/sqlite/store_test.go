package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func commentAnnotation(id string, page int) *domain.Annotation {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Annotation{
		ID:         id,
		Type:       domain.TypeComment,
		PageNumber: page,
		Data:       domain.CommentData{Position: domain.Point{X: 12, Y: 34}, Content: "note " + id},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	a := commentAnnotation("a1", 3)
	require.NoError(t, store.Save(ctx, a))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, domain.TypeComment, got.Type)
	assert.Equal(t, 3, got.PageNumber)

	data, ok := got.Data.(domain.CommentData)
	require.True(t, ok, "payload decodes back to its typed form")
	assert.Equal(t, domain.Point{X: 12, Y: 34}, data.Position)
	assert.Equal(t, "note a1", data.Content)
}

func TestStore_SaveDuplicateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, commentAnnotation("a1", 1)))
	err := store.Save(ctx, commentAnnotation("a1", 2))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_UpdateRoundTripsComments(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	a := commentAnnotation("a1", 1)
	require.NoError(t, store.Save(ctx, a))

	a.Comments = []domain.Comment{
		{ID: "c1", Content: "first reply", CreatedAt: time.Now().UTC().Truncate(time.Millisecond)},
	}
	a.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, store.Update(ctx, a))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "first reply", got.Comments[0].Content)
}

func TestStore_UpdateNotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.Update(context.Background(), commentAnnotation("ghost", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, commentAnnotation("a1", 1)))
	require.NoError(t, store.Delete(ctx, "a1"))

	_, err := store.Get(ctx, "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "a1"), domain.ErrNotFound)
}

func TestStore_ListByPageOldestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, id := range []string{"a", "b", "c"} {
		a := commentAnnotation(id, 7)
		a.CreatedAt = base.Add(time.Duration(i) * time.Second)
		a.UpdatedAt = a.CreatedAt
		require.NoError(t, store.Save(ctx, a))
	}
	require.NoError(t, store.Save(ctx, commentAnnotation("other", 2)))

	got, err := store.ListByPage(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestStore_ListMixedTypes(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, store.Save(ctx, commentAnnotation("a", 1)))
	require.NoError(t, store.Save(ctx, &domain.Annotation{
		ID:         "shot",
		Type:       domain.TypeScreenshot,
		PageNumber: 2,
		Data: domain.ScreenshotData{
			Rect:      domain.Rect{X: 10, Y: 20, Width: 100, Height: 50},
			ImagePath: "shots/shot.png",
			ImageHash: "abc123",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, store.Save(ctx, &domain.Annotation{
		ID:         "hl",
		Type:       domain.TypeTextHighlight,
		PageNumber: 2,
		Data: domain.HighlightData{
			SelectedText:   "passage",
			HighlightColor: "#ffeb3b",
			TextRanges:     []domain.TextRange{{StartNode: 1, EndNode: 2, EndOffset: 4}},
			BoundingBox:    domain.Rect{X: 5, Y: 6, Width: 70, Height: 12},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	byID := map[string]domain.Annotation{}
	for _, a := range got {
		byID[a.ID] = a
	}
	_, ok := byID["shot"].Data.(domain.ScreenshotData)
	assert.True(t, ok)
	_, ok = byID["hl"].Data.(domain.HighlightData)
	assert.True(t, ok)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, commentAnnotation("persist", 1)))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "persist")
	require.NoError(t, err)
	assert.Equal(t, "persist", got.ID)
}
