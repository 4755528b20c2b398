package driven

import (
	"context"
	"image"
)

// SavedImage describes a stored capture.
type SavedImage struct {
	// Path locates the encoded image.
	Path string

	// Hash is the content hash of the encoded bytes.
	Hash string
}

// ImageStore persists screenshot captures. Saving happens before the
// creation request is emitted; a failed save means the annotation is never
// created.
type ImageStore interface {
	// SaveImage encodes and durably stores a captured region.
	SaveImage(ctx context.Context, img image.Image) (*SavedImage, error)
}
