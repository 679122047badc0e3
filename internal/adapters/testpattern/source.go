// Package testpattern implements ports.FrameSource with a locally rendered
// status card: a title bar, a ticking clock and a gray ramp. It stands in
// for the external page renderer so the reconciler can run end-to-end in
// mock mode, and it exercises both refresh paths (the clock region is pure
// black/white, the ramp is not).
package testpattern

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/inkwire/inkwire/internal/domain"
	"github.com/inkwire/inkwire/internal/ports"
)

// Source renders the status card and reports the regions it redraws.
type Source struct {
	mu        sync.Mutex
	dc        *gg.Context
	clockFace font.Face
	bounds    image.Rectangle

	titleRect image.Rectangle
	clockRect image.Rectangle
	rampRect  image.Rectangle

	events chan domain.MutationBatch
	stop   chan struct{}
	wg     sync.WaitGroup
	logger ports.Logger
}

// New creates a source rendering a width x height card, redrawing the clock
// region every interval.
func New(width, height int, interval time.Duration, logger ports.Logger) (*Source, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("testpattern: parse font: %w", err)
	}

	s := &Source{
		dc:        gg.NewContext(width, height),
		clockFace: truetype.NewFace(f, &truetype.Options{Size: float64(height) / 8}),
		bounds:    image.Rect(0, 0, width, height),
		titleRect: image.Rect(0, 0, width, height/6),
		clockRect: image.Rect(0, height/6, width*3/4, height/2),
		rampRect:  image.Rect(0, height*5/6, width, height),
		events:    make(chan domain.MutationBatch, 16),
		stop:      make(chan struct{}),
		logger:    logger,
	}

	s.drawChrome(truetype.NewFace(f, &truetype.Options{Size: float64(height) / 14}))
	s.redrawClock()

	s.wg.Add(1)
	go s.tickLoop(interval)

	logger.Info("test pattern source started",
		ports.Int("width", width),
		ports.Int("height", height),
		ports.Duration("interval", interval),
	)
	return s, nil
}

// drawChrome paints the static parts of the card: white background, title
// text and the gray ramp.
func (s *Source) drawChrome(titleFace font.Face) {
	s.dc.SetRGB(1, 1, 1)
	s.dc.Clear()

	s.dc.SetRGB(0, 0, 0)
	s.dc.SetFontFace(titleFace)
	s.dc.DrawString("inkwire test card", 8, float64(s.titleRect.Max.Y)-8)
	s.dc.DrawLine(0, float64(s.titleRect.Max.Y), float64(s.bounds.Max.X), float64(s.titleRect.Max.Y))
	s.dc.SetLineWidth(2)
	s.dc.Stroke()

	// 16-step ramp, one block per gray level.
	blockW := float64(s.rampRect.Dx()) / 16
	for i := 0; i < 16; i++ {
		v := float64(i) / 15
		s.dc.SetRGB(v, v, v)
		s.dc.DrawRectangle(float64(s.rampRect.Min.X)+float64(i)*blockW,
			float64(s.rampRect.Min.Y), blockW, float64(s.rampRect.Dy()))
		s.dc.Fill()
	}
}

// redrawClock repaints the clock region with the current time.
func (s *Source) redrawClock() {
	s.dc.SetRGB(1, 1, 1)
	s.dc.DrawRectangle(float64(s.clockRect.Min.X), float64(s.clockRect.Min.Y),
		float64(s.clockRect.Dx()), float64(s.clockRect.Dy()))
	s.dc.Fill()

	s.dc.SetRGB(0, 0, 0)
	s.dc.SetFontFace(s.clockFace)
	s.dc.DrawString(time.Now().Format("15:04:05"),
		float64(s.clockRect.Min.X)+8, float64(s.clockRect.Max.Y)-12)
}

// tickLoop redraws the clock every interval and emits the dirty region.
func (s *Source) tickLoop(interval time.Duration) {
	defer s.wg.Done()
	defer close(s.events)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		s.redrawClock()
		s.mu.Unlock()

		batch := domain.MutationBatch{
			// Pure black/white text; safe for the no-flash path.
			{Region: s.clockRect, FourLevel: true},
		}
		select {
		case s.events <- batch:
		default:
			// Engine is behind; the next tick covers the same region.
		}
	}
}

// CaptureRaster renders the requested region to a tightly packed grayscale
// raster. A nil rect captures the full card.
func (s *Source) CaptureRaster(ctx context.Context, rect *image.Rectangle) (*image.Gray, error) {
	r := s.bounds
	if rect != nil {
		r = rect.Intersect(s.bounds)
	}
	if r.Empty() {
		return nil, fmt.Errorf("testpattern: capture of empty region")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := image.NewGray(r)
	draw.Draw(g, r, s.dc.Image(), r.Min, draw.Src)
	return g, nil
}

// VisibilityCounts describes the card's three regions: title and clock are
// pure black/white, the ramp needs full depth.
func (s *Source) VisibilityCounts(ctx context.Context) (domain.VisibilityCounts, error) {
	return domain.VisibilityCounts{
		Total:       3,
		FourLevel:   2,
		NoFourLevel: 1,
	}, nil
}

// Events returns the mutation stream.
func (s *Source) Events() <-chan domain.MutationBatch {
	return s.events
}

// Close stops the tick loop and closes the mutation stream.
func (s *Source) Close() error {
	close(s.stop)
	s.wg.Wait()
	return nil
}

var _ ports.FrameSource = (*Source)(nil)
