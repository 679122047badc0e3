package testpattern

import (
	"context"
	"image"
	"testing"
	"time"

	logAdapter "github.com/inkwire/inkwire/internal/adapters/log"
)

func newTestSource(t *testing.T) *Source {
	t.Helper()
	s, err := New(128, 96, 10*time.Millisecond, logAdapter.NewNoopLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCaptureRaster_FullFrame(t *testing.T) {
	s := newTestSource(t)

	g, err := s.CaptureRaster(context.Background(), nil)
	if err != nil {
		t.Fatalf("CaptureRaster: %v", err)
	}
	if g.Bounds() != image.Rect(0, 0, 128, 96) {
		t.Errorf("bounds = %v, want full frame", g.Bounds())
	}
	if len(g.Pix) != 128*96 {
		t.Errorf("pix length = %d, want %d", len(g.Pix), 128*96)
	}
	if g.Stride != 128 {
		t.Errorf("stride = %d, want tightly packed 128", g.Stride)
	}
}

func TestCaptureRaster_WindowClipped(t *testing.T) {
	s := newTestSource(t)

	rect := image.Rect(96, 80, 256, 200)
	g, err := s.CaptureRaster(context.Background(), &rect)
	if err != nil {
		t.Fatalf("CaptureRaster: %v", err)
	}
	if want := image.Rect(96, 80, 128, 96); g.Bounds() != want {
		t.Errorf("bounds = %v, want clipped %v", g.Bounds(), want)
	}
}

func TestCaptureRaster_OutOfBounds(t *testing.T) {
	s := newTestSource(t)

	rect := image.Rect(500, 500, 600, 600)
	if _, err := s.CaptureRaster(context.Background(), &rect); err == nil {
		t.Error("CaptureRaster = nil, want error for region off the card")
	}
}

func TestCaptureRaster_RampHasGray(t *testing.T) {
	s := newTestSource(t)

	g, err := s.CaptureRaster(context.Background(), &s.rampRect)
	if err != nil {
		t.Fatalf("CaptureRaster: %v", err)
	}
	hasGray := false
	for _, px := range g.Pix {
		if n := px >> 4; n != 0x0 && n != 0xF {
			hasGray = true
			break
		}
	}
	if !hasGray {
		t.Error("ramp capture has no mid-gray samples")
	}
}

func TestEvents_ClockTicks(t *testing.T) {
	s := newTestSource(t)

	select {
	case batch := <-s.Events():
		if len(batch) != 1 {
			t.Fatalf("batch size = %d, want 1", len(batch))
		}
		if !batch[0].FourLevel {
			t.Error("clock region not marked four-level")
		}
		if batch[0].Region != s.clockRect {
			t.Errorf("region = %v, want clock %v", batch[0].Region, s.clockRect)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no mutation batch within deadline")
	}
}

func TestClose_ClosesStream(t *testing.T) {
	s, err := New(64, 48, time.Minute, logAdapter.NewNoopLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, ok := <-s.Events(); ok {
		t.Error("events channel still open after Close")
	}
}
