package ports

import (
	"context"
	"image"

	"github.com/inkwire/inkwire/internal/domain"
)

// Panel writes packed rasters to the display controller.
//
// The controller accepts one in-flight operation at a time: Draw must be
// invoked serially, never overlapping. The engine guarantees this by only
// dispatching from its own goroutine.
type Panel interface {
	// Init prepares the controller (reset, waveform upload, calibration).
	Init(ctx context.Context) error

	// Draw writes one packed 4bpp raster covering rect and refreshes it
	// with the given mode. len(packed) must equal rect.Dx()*rect.Dy()/2.
	Draw(ctx context.Context, packed []byte, rect image.Rectangle, mode domain.RefreshMode) error

	// Clear blanks the panel to white.
	Clear(ctx context.Context) error

	// Close powers down the controller and releases the transport.
	Close() error
}
