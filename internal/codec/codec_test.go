package codec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/inkwire/inkwire/internal/domain"
)

func TestPack_Passthrough(t *testing.T) {
	pix := []byte{0x00, 0xFF, 0x10, 0xA7}
	got, err := Pack(pix, Passthrough16)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	want := []byte{0x0F, 0x1A}
	if !bytes.Equal(got, want) {
		t.Errorf("Pack = %x, want %x", got, want)
	}
}

func TestPack_Coerced(t *testing.T) {
	// Nibbles 0..15 snap down to {0,5,10,15} in groups of five.
	tests := []struct {
		name string
		pix  []byte
		want []byte
	}{
		{"extremes untouched", []byte{0x00, 0xF0}, []byte{0x0F}},
		{"low band to zero", []byte{0x10, 0x40}, []byte{0x00}},
		{"mid band to five", []byte{0x50, 0x90}, []byte{0x55}},
		{"high band to ten", []byte{0xA0, 0xE0}, []byte{0xAA}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pack(tt.pix, Coerced4)
			if err != nil {
				t.Fatalf("Pack: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Pack = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestPack_PixelOrder(t *testing.T) {
	// Earlier pixel lands in the high nibble.
	got, err := Pack([]byte{0x10, 0x20}, Passthrough16)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if got[0] != 0x12 {
		t.Errorf("Pack = %#02x, want 0x12", got[0])
	}
}

func TestPack_OddLength(t *testing.T) {
	_, err := Pack([]byte{0x00, 0x11, 0x22}, Passthrough16)
	if !errors.Is(err, domain.ErrRasterSize) {
		t.Errorf("Pack error = %v, want ErrRasterSize", err)
	}
}

func TestPack_Empty(t *testing.T) {
	got, err := Pack(nil, Coerced4)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Pack length = %d, want 0", len(got))
	}
}

func TestPackModeFor(t *testing.T) {
	tests := []struct {
		mode domain.RefreshMode
		want PackMode
	}{
		{domain.Full16, Passthrough16},
		{domain.PartialFlash, Passthrough16},
		{domain.Full4, Coerced4},
		{domain.PartialNoFlash, Coerced4},
	}
	for _, tt := range tests {
		if got := PackModeFor(tt.mode); got != tt.want {
			t.Errorf("PackModeFor(%v) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestIsBlackWhite(t *testing.T) {
	tests := []struct {
		name string
		pix  []byte
		want bool
	}{
		{"empty", nil, true},
		{"pure black and white", []byte{0x00, 0xFF, 0x0A, 0xF3}, true},
		{"single gray sample", []byte{0x00, 0x80, 0xFF}, false},
		{"near-white gray", []byte{0xE0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlackWhite(tt.pix); got != tt.want {
				t.Errorf("IsBlackWhite = %v, want %v", got, tt.want)
			}
		})
	}
}
