package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/inkwire/inkwire/internal/domain"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(defaults) = %v, want nil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero refresh interval", func(c *Config) { c.FullRefreshInterval = 0 }},
		{"negative coalesce delay", func(c *Config) { c.CoalesceDelay = -time.Second }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"odd width", func(c *Config) { c.Width = 799 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"zero max transfer", func(c *Config) { c.MaxTransfer = 0 }},
		{"zero vcom", func(c *Config) { c.VcomMV = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_MockDirFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mock = true
	cfg.MockDir = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.MockDir == "" {
		t.Error("MockDir not defaulted for mock mode")
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("INKWIRE_FULL_REFRESH_INTERVAL", "90s")
	t.Setenv("INKWIRE_COALESCE_DELAY", "250ms")
	t.Setenv("INKWIRE_DEFAULT_FOUR_LEVEL", "true")
	t.Setenv("INKWIRE_MOCK", "1")
	t.Setenv("INKWIRE_MOCK_DIR", "/tmp/frames")
	t.Setenv("INKWIRE_SPI_PORT", "SPI0.1")
	t.Setenv("INKWIRE_VCOM_MV", "2100")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.FullRefreshInterval != 90*time.Second {
		t.Errorf("FullRefreshInterval = %v, want 90s", cfg.FullRefreshInterval)
	}
	if cfg.CoalesceDelay != 250*time.Millisecond {
		t.Errorf("CoalesceDelay = %v, want 250ms", cfg.CoalesceDelay)
	}
	if !cfg.DefaultFourLevel {
		t.Error("DefaultFourLevel = false, want true")
	}
	if !cfg.Mock {
		t.Error("Mock = false, want true")
	}
	if cfg.MockDir != "/tmp/frames" {
		t.Errorf("MockDir = %q, want /tmp/frames", cfg.MockDir)
	}
	if cfg.SPIPort != "SPI0.1" {
		t.Errorf("SPIPort = %q, want SPI0.1", cfg.SPIPort)
	}
	if cfg.VcomMV != 2100 {
		t.Errorf("VcomMV = %d, want 2100", cfg.VcomMV)
	}
}

func TestApplyEnvConfig_FlagPrecedence(t *testing.T) {
	t.Setenv("INKWIRE_COALESCE_DELAY", "5s")

	cfg := DefaultConfig()
	cfg.CoalesceDelay = 100 * time.Millisecond
	changed := map[string]bool{"coalesce-delay": true}

	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}
	if cfg.CoalesceDelay != 100*time.Millisecond {
		t.Errorf("CoalesceDelay = %v, want flag value 100ms", cfg.CoalesceDelay)
	}
}

func TestApplyEnvConfig_BadDuration(t *testing.T) {
	t.Setenv("INKWIRE_FULL_REFRESH_INTERVAL", "not-a-duration")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err == nil {
		t.Error("ApplyEnvConfig = nil, want parse error")
	}
}
