// Package codec converts 8-bit grayscale rasters into the controller's
// packed 4-bit-per-pixel wire format.
//
// Each output byte carries two pixels: the earlier pixel in the high nibble,
// the later pixel in the low nibble. Only the high 4 bits of each 8-bit
// sample survive packing; the two pack modes differ in what happens to that
// nibble first.
package codec

import (
	"fmt"

	"github.com/inkwire/inkwire/internal/domain"
)

// PackMode selects the quantization rule applied while packing.
type PackMode int

const (
	// Passthrough16 keeps the full 16-level nibble unchanged. Used for the
	// flashy full-depth refresh modes.
	Passthrough16 PackMode = iota

	// Coerced4 snaps each nibble to the nearest of the four codes
	// {0, 5, 10, 15} required by the no-flash hardware mode.
	Coerced4
)

// PackModeFor returns the pack mode matching a refresh mode's depth.
func PackModeFor(m domain.RefreshMode) PackMode {
	if m.FourLevel() {
		return Coerced4
	}
	return Passthrough16
}

// Pack converts an 8-bit grayscale raster into a packed 4bpp raster.
// The sample count must be even; an odd-length raster cannot be packed
// without silently dropping the trailing sample and is rejected with
// domain.ErrRasterSize.
func Pack(pix []byte, mode PackMode) ([]byte, error) {
	if len(pix)%2 != 0 {
		return nil, fmt.Errorf("%w: odd sample count %d", domain.ErrRasterSize, len(pix))
	}

	out := make([]byte, len(pix)/2)
	for i := 0; i < len(pix); i += 2 {
		hi := pix[i] >> 4
		lo := pix[i+1] >> 4
		if mode == Coerced4 {
			hi = hi / 5 * 5
			lo = lo / 5 * 5
		}
		out[i/2] = hi<<4 | lo
	}
	return out, nil
}

// IsBlackWhite reports whether every sample's high nibble is already at an
// extreme (0x0 or 0xF). Such a raster packs to an identical result whether
// quantized or not, so a region that was never marked 4-level can still take
// the faster no-flash path without perceptible loss.
func IsBlackWhite(pix []byte) bool {
	for _, s := range pix {
		if n := s >> 4; n != 0x0 && n != 0xF {
			return false
		}
	}
	return true
}
