package screenshot

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/pagemark-labs/pagemark/internal/core/domain"
)

// ExtractRegion clamps rect to the raster's bounds and copies the clamped
// region into a fresh RGBA image. The clamp guarantees
// 0 <= x' <= x'+width' <= W (and symmetrically for height), so an
// out-of-bounds drag never reads outside the raster. A region that clamps
// to zero size is a validation failure.
func ExtractRegion(raster image.Image, rect domain.Rect) (*image.RGBA, domain.Rect, error) {
	b := raster.Bounds()
	clamped := rect.ClampTo(float64(b.Dx()), float64(b.Dy()))
	w, h := int(clamped.Width), int(clamped.Height)
	if w <= 0 || h <= 0 {
		return nil, clamped, fmt.Errorf("%w: empty capture region", domain.ErrValidation)
	}

	src := image.Rect(
		b.Min.X+int(clamped.X),
		b.Min.Y+int(clamped.Y),
		b.Min.X+int(clamped.X)+w,
		b.Min.Y+int(clamped.Y)+h,
	)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Copy(out, image.Point{}, raster, src, draw.Src, nil)
	return out, clamped, nil
}
