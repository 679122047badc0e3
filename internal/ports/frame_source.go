package ports

import (
	"context"
	"image"

	"github.com/inkwire/inkwire/internal/domain"
)

// FrameSource provides access to the rendered page: pixel captures on
// demand and a stream of dirty-region reports.
//
// The production implementation sits in front of a browser-like renderer;
// the in-tree testpattern adapter renders a status card locally. Either way
// the engine only ever calls a FrameSource from its own goroutine.
type FrameSource interface {
	// CaptureRaster produces an 8-bit grayscale raster for the given
	// rectangle, or for the full frame when rect is nil. The returned
	// image is tightly packed (Stride == Dx) and owned by the caller.
	CaptureRaster(ctx context.Context, rect *image.Rectangle) (*image.Gray, error)

	// VisibilityCounts reports the renderer's visible regions grouped by
	// depth preference. Queried once per full refresh.
	VisibilityCounts(ctx context.Context) (domain.VisibilityCounts, error)

	// Events returns the mutation stream. One batch corresponds to one
	// observation tick of renderer changes. The channel is closed when
	// the source shuts down.
	Events() <-chan domain.MutationBatch

	// Close releases all resources held by the source.
	Close() error
}
