package screenshot

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

func TestExtractRegion_ClampsToRaster(t *testing.T) {
	raster := image.NewRGBA(image.Rect(0, 0, 40, 100))

	// A drag reaching past the left edge clamps to the raster: the origin
	// moves to 0 and the width shrinks by the overhang.
	region, clamped, err := ExtractRegion(raster, domain.Rect{X: -5, Y: 0, Width: 50, Height: 30})
	require.NoError(t, err)

	assert.Equal(t, domain.Rect{X: 0, Y: 0, Width: 40, Height: 30}, clamped)
	assert.Equal(t, 40, region.Bounds().Dx())
	assert.Equal(t, 30, region.Bounds().Dy())
}

func TestExtractRegion_CopiesPixels(t *testing.T) {
	raster := image.NewRGBA(image.Rect(0, 0, 100, 100))
	marker := color.RGBA{R: 200, G: 10, B: 10, A: 255}
	raster.SetRGBA(25, 35, marker)

	region, _, err := ExtractRegion(raster, domain.Rect{X: 20, Y: 30, Width: 10, Height: 10})
	require.NoError(t, err)

	assert.Equal(t, marker, region.RGBAAt(5, 5))
}

func TestExtractRegion_ZeroAreaFails(t *testing.T) {
	raster := image.NewRGBA(image.Rect(0, 0, 40, 40))

	_, _, err := ExtractRegion(raster, domain.Rect{X: 10, Y: 10, Width: 0, Height: 12})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
