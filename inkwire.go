// Package inkwire drives a memory-in-pixel e-paper panel from a live frame
// source, refreshing only the regions that changed.
//
// Example usage:
//
//	cfg := inkwire.DefaultConfig()
//	cfg.Mock = true
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := inkwire.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Run wires the built-in test pattern renderer to either a physical SPI
// panel or the PNG-dumping mock. Applications with their own renderer or
// panel should use pkg/inkwire directly.
package inkwire

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwire/inkwire/internal/adapters/epd"
	logAdapter "github.com/inkwire/inkwire/internal/adapters/log"
	"github.com/inkwire/inkwire/internal/adapters/mock"
	"github.com/inkwire/inkwire/internal/adapters/testpattern"
	"github.com/inkwire/inkwire/internal/cliconfig"
	"github.com/inkwire/inkwire/internal/ports"
	ink "github.com/inkwire/inkwire/pkg/inkwire"
)

// Config holds the configuration for the panel driver.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with sensible default values. The pin
// defaults follow the common e-paper HAT wiring on a Raspberry Pi header.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Run starts the reconciler with the built-in test pattern source and blocks
// until the context is cancelled or the engine crashes.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logAdapter.NewZerologAdapter()

	source, err := testpattern.New(cfg.Width, cfg.Height, time.Minute, logger)
	if err != nil {
		return fmt.Errorf("create frame source: %w", err)
	}

	var panel ports.Panel
	if cfg.Mock {
		panel = mock.NewPanel(cfg.MockDir, cfg.Width, cfg.Height, logger)
	} else {
		dev, err := epd.New(epd.Opts{
			SPIPort:     cfg.SPIPort,
			DCPin:       cfg.DCPin,
			CSPin:       cfg.CSPin,
			ResetPin:    cfg.ResetPin,
			BusyPin:     cfg.BusyPin,
			Width:       cfg.Width,
			Height:      cfg.Height,
			VcomMV:      cfg.VcomMV,
			MaxTransfer: cfg.MaxTransfer,
		})
		if err != nil {
			_ = source.Close()
			return fmt.Errorf("open panel: %w", err)
		}
		panel = dev
	}

	w, err := ink.New(ink.Config{
		FullRefreshInterval: cfg.FullRefreshInterval,
		CoalesceDelay:       cfg.CoalesceDelay,
		CoalesceDisabled:    cfg.CoalesceDelay == 0,
		DefaultFourLevel:    cfg.DefaultFourLevel,
	}, source, panel, ink.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := w.Stop(); err != nil {
				return err
			}
			return ctx.Err()
		case <-ticker.C:
			switch w.Status() {
			case ink.StateCrashed:
				return fmt.Errorf("inkwire: engine crashed")
			case ink.StateStopped:
				return nil
			}
		}
	}
}
