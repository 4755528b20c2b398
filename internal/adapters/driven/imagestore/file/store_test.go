package file

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.SetRGBA(2, 3, color.RGBA{R: 255, A: 255})
	return img
}

func TestSaveImage_WritesDecodablePNG(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	saved, err := store.SaveImage(context.Background(), testImage())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.Hash)

	f, err := os.Open(saved.Path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
}

func TestSaveImage_SameContentSameFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.SaveImage(context.Background(), testImage())
	require.NoError(t, err)
	second, err := store.SaveImage(context.Background(), testImage())
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Hash, second.Hash)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "identical captures share one file")
}

func TestSaveImage_CancelledContext(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.SaveImage(ctx, testImage())
	assert.ErrorIs(t, err, context.Canceled)
}
