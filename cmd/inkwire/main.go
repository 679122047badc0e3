package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/inkwire/inkwire/internal/adapters/epd"
	logAdapter "github.com/inkwire/inkwire/internal/adapters/log"
	"github.com/inkwire/inkwire/internal/adapters/mock"
	"github.com/inkwire/inkwire/internal/adapters/testpattern"
	"github.com/inkwire/inkwire/internal/cliconfig"
	"github.com/inkwire/inkwire/internal/ports"
	"github.com/inkwire/inkwire/pkg/inkwire"
)

const helpDescription = `
Drive a memory-in-pixel e-paper panel from a live frame source, refreshing
only the regions that changed.

Highlights:
  - Coalesces bursts of dirty regions into one aligned partial refresh.
  - Picks flash/no-flash waveforms per pass based on frame content.
  - Periodic full refresh keeps ghosting in check; configure via file, env, or flags.
  - Mock mode renders frames to PNG files, no hardware required.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  inkwire --spi-port SPI0.0 --vcom-mv 1520
  inkwire --mock --mock-dir /tmp/inkwire-frames --coalesce-delay 500ms
  inkwire --config $HOME/.inkwire/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// clockInterval is how often the built-in test pattern redraws its clock.
const clockInterval = time.Minute

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "inkwire",
		Short:   "Partial-refresh driver for memory-in-pixel e-paper panels",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config file first (default $HOME/.inkwire/config.toml), then
			// env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment (INKWIRE_*) overrides file config but is
			// overridden by flags.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			zl := logAdapter.NewZerologAdapterWithLogger(log)

			source, err := testpattern.New(cfg.Width, cfg.Height, clockInterval, zl)
			if err != nil {
				return fmt.Errorf("create frame source: %w", err)
			}

			var panel ports.Panel
			if cfg.Mock {
				panel = mock.NewPanel(cfg.MockDir, cfg.Width, cfg.Height, zl)
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
					return fmt.Errorf("open panel: %w", err)
				}
				panel = dev
			}

			libCfg := inkwire.Config{
				FullRefreshInterval: cfg.FullRefreshInterval,
				CoalesceDelay:       cfg.CoalesceDelay,
				CoalesceDisabled:    cfg.CoalesceDelay == 0,
				DefaultFourLevel:    cfg.DefaultFourLevel,
			}

			opts := []inkwire.Option{inkwire.WithLogger(zl)}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				opts = append(opts, inkwire.WithConfigReload(cfgFile))
			}

			w, err := inkwire.New(libCfg, source, panel, opts...)
			if err != nil {
				return fmt.Errorf("create inkwire: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			if err := w.Start(ctx); err != nil {
				return fmt.Errorf("start inkwire: %w", err)
			}

			// Watch for a crash so a dead engine doesn't leave the process
			// hanging on the signal wait.
			doneCh := make(chan struct{})
			go func() {
				ticker := time.NewTicker(100 * time.Millisecond)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						status := w.Status()
						if status == inkwire.StateStopped || status == inkwire.StateCrashed {
							close(doneCh)
							return
						}
					}
				}
			}()

			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
				if err := w.Stop(); err != nil {
					return fmt.Errorf("stop inkwire: %w", err)
				}
			case <-doneCh:
				// The instance already shut itself down (crash or frame
				// source gone); there is nothing left to stop.
				if w.Status() == inkwire.StateCrashed {
					return fmt.Errorf("inkwire crashed")
				}
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.inkwire/config.toml)")

	root.Flags().DurationVar(&cfg.FullRefreshInterval, "full-refresh-interval", cfg.FullRefreshInterval, "cadence of automatic full refreshes")
	root.Flags().DurationVar(&cfg.CoalesceDelay, "coalesce-delay", cfg.CoalesceDelay, "dirty-region coalescing window (0 disables coalescing)")
	root.Flags().BoolVar(&cfg.DefaultFourLevel, "default-four-level", cfg.DefaultFourLevel, "prefer the 4-level waveform for full refreshes")

	root.Flags().BoolVar(&cfg.Mock, "mock", cfg.Mock, "render frames to PNG files instead of driving hardware")
	root.Flags().StringVar(&cfg.MockDir, "mock-dir", cfg.MockDir, "output directory for mock frames")

	root.Flags().StringVar(&cfg.SPIPort, "spi-port", cfg.SPIPort, "SPI port name (empty selects the first available)")
	root.Flags().StringVar(&cfg.DCPin, "dc-pin", cfg.DCPin, "data/command GPIO pin name")
	root.Flags().StringVar(&cfg.CSPin, "cs-pin", cfg.CSPin, "chip select GPIO pin name")
	root.Flags().StringVar(&cfg.ResetPin, "reset-pin", cfg.ResetPin, "reset GPIO pin name")
	root.Flags().StringVar(&cfg.BusyPin, "busy-pin", cfg.BusyPin, "busy GPIO pin name")
	root.Flags().IntVar(&cfg.Width, "width", cfg.Width, "panel width in pixels (must be even)")
	root.Flags().IntVar(&cfg.Height, "height", cfg.Height, "panel height in pixels")
	root.Flags().IntVar(&cfg.VcomMV, "vcom-mv", cfg.VcomMV, "VCOM calibration voltage in millivolts")
	root.Flags().IntVar(&cfg.MaxTransfer, "max-transfer", cfg.MaxTransfer, "maximum bytes per SPI transfer")
	if err := root.Flags().MarkHidden("max-transfer"); err != nil {
		log.Info().Err(err).Msg("failed to hide max-transfer flag")
	}

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("inkwire")
		os.Exit(1)
	}
}
