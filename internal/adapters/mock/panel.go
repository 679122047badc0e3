// Package mock implements ports.Panel as a file-based stand-in for the
// physical display: every dispatched window is unpacked back to 8-bit gray
// and written as a numbered PNG, so refresh behavior can be inspected
// without hardware attached.
package mock

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/inkwire/inkwire/internal/domain"
	"github.com/inkwire/inkwire/internal/ports"
)

// Panel writes draw calls to PNG files in a directory. It implements
// ports.Panel and is safe for the engine's serial call pattern only.
type Panel struct {
	dir    string
	bounds image.Rectangle
	logger ports.Logger
	seq    int
}

// NewPanel creates a mock panel dumping frames into dir.
func NewPanel(dir string, width, height int, logger ports.Logger) *Panel {
	return &Panel{
		dir:    dir,
		bounds: image.Rect(0, 0, width, height),
		logger: logger,
	}
}

// Init creates the dump directory.
func (p *Panel) Init(ctx context.Context) error {
	return os.MkdirAll(p.dir, 0o755)
}

// Draw unpacks the 4bpp payload and writes it as a PNG named after the
// sequence number, the refresh mode and the window.
func (p *Panel) Draw(ctx context.Context, packed []byte, rect image.Rectangle, mode domain.RefreshMode) error {
	if want := rect.Dx() * rect.Dy() / 2; len(packed) != want {
		return fmt.Errorf("%w: %d packed bytes for %s, want %d", domain.ErrRasterSize, len(packed), rect, want)
	}

	img := image.NewGray(rect)
	for i, b := range packed {
		// Expand each nibble over the 8-bit range (0xF -> 0xFF).
		img.Pix[2*i] = (b >> 4) * 0x11
		img.Pix[2*i+1] = (b & 0x0F) * 0x11
	}

	name := fmt.Sprintf("frame-%04d-%s-%dx%d+%d+%d.png",
		p.seq, mode, rect.Dx(), rect.Dy(), rect.Min.X, rect.Min.Y)
	p.seq++

	path := filepath.Join(p.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}

	p.logger.Debug("mock draw", ports.String("file", path), ports.Stringer("mode", mode))
	return nil
}

// Clear removes nothing on disk; it just records a white full-frame draw.
func (p *Panel) Clear(ctx context.Context) error {
	packed := make([]byte, p.bounds.Dx()*p.bounds.Dy()/2)
	for i := range packed {
		packed[i] = 0xFF
	}
	return p.Draw(ctx, packed, p.bounds, domain.Full16)
}

// Close is a no-op.
func (p *Panel) Close() error {
	return nil
}

var _ ports.Panel = (*Panel)(nil)
