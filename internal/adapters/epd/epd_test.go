package epd

import (
	"errors"
	"testing"

	"github.com/inkwire/inkwire/internal/domain"
)

func TestNew_InvalidOpts(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
	}{
		{
			name: "zero dimensions",
			opts: Opts{MaxTransfer: 4096},
		},
		{
			name: "negative height",
			opts: Opts{Width: 800, Height: -600, MaxTransfer: 4096},
		},
		{
			name: "odd width",
			opts: Opts{Width: 801, Height: 600, MaxTransfer: 4096},
		},
		{
			name: "zero max transfer",
			opts: Opts{Width: 800, Height: 600},
		},
		{
			name: "negative max transfer",
			opts: Opts{Width: 800, Height: 600, MaxTransfer: -1},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.opts); !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("New(%+v) = %v, want ErrInvalidConfig", tc.opts, err)
			}
		})
	}
}
