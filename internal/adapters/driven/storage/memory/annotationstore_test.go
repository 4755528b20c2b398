package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

func sample(id string, page int, created time.Time) *domain.Annotation {
	return &domain.Annotation{
		ID:         id,
		Type:       domain.TypeComment,
		PageNumber: page,
		Data:       domain.CommentData{Position: domain.Point{X: 1, Y: 2}, Content: "c"},
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestAnnotationStore_SaveAndGet(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	a := sample("a1", 1, time.Now())
	require.NoError(t, store.Save(ctx, a))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Data, got.Data)
}

func TestAnnotationStore_SaveRejectsDuplicateID(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sample("a1", 1, time.Now())))
	err := store.Save(ctx, sample("a1", 2, time.Now()))

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAnnotationStore_UpdateUnknownID(t *testing.T) {
	store := NewAnnotationStore()

	err := store.Update(context.Background(), sample("missing", 1, time.Now()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationStore_Delete(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sample("a1", 1, time.Now())))

	require.NoError(t, store.Delete(ctx, "a1"))

	_, err := store.Get(ctx, "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationStore_ListByPage_OldestFirst(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()
	base := time.Now()
	require.NoError(t, store.Save(ctx, sample("newer", 3, base.Add(time.Minute))))
	require.NoError(t, store.Save(ctx, sample("older", 3, base)))
	require.NoError(t, store.Save(ctx, sample("other-page", 4, base)))

	list, err := store.ListByPage(ctx, 3)
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "older", list[0].ID)
	assert.Equal(t, "newer", list[1].ID)
}

func TestAnnotationStore_RespectsContextCancellation(t *testing.T) {
	store := NewAnnotationStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, sample("a1", 1, time.Now()))

	assert.Error(t, err)
}
