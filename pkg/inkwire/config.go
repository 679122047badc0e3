package inkwire

import (
	"fmt"
	"time"

	"github.com/inkwire/inkwire/internal/domain"
)

// Config holds the reconciliation parameters. Panel wiring and renderer
// setup live with the adapters; this is only what the engine itself needs.
type Config struct {
	// FullRefreshInterval is the cadence of automatic full refreshes.
	// Default: 60s.
	FullRefreshInterval time.Duration

	// CoalesceDelay is the window during which dirty regions accumulate
	// before being processed as one pass. Zero disables coalescing and
	// dispatches every region synchronously. Default: 1s.
	CoalesceDelay time.Duration

	// CoalesceDisabled marks a deliberate zero CoalesceDelay, so
	// SetDefaults does not overwrite it.
	CoalesceDisabled bool

	// DefaultFourLevel makes 4-level the default full-refresh depth,
	// letting visible regions opt out instead of opting in.
	DefaultFourLevel bool
}

// SetDefaults fills unset fields with default values.
func (c *Config) SetDefaults() {
	if c.FullRefreshInterval == 0 {
		c.FullRefreshInterval = 60 * time.Second
	}
	if c.CoalesceDelay == 0 && !c.CoalesceDisabled {
		c.CoalesceDelay = time.Second
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.FullRefreshInterval <= 0 {
		return fmt.Errorf("%w: full refresh interval must be positive", domain.ErrInvalidConfig)
	}
	if c.CoalesceDelay < 0 {
		return fmt.Errorf("%w: coalesce delay must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}
