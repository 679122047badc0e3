package inkwire

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwire/inkwire/internal/app"
	"github.com/inkwire/inkwire/internal/cliconfig"
	"github.com/inkwire/inkwire/internal/ports"
)

// reloadDebounce is the delay after a file change before the config is
// re-read, so editors writing in multiple steps trigger one reload.
const reloadDebounce = 250 * time.Millisecond

// reloadWatcher monitors the TOML config file and pushes timing/policy
// changes into the running engine. Only the engine settings participate in
// reload; panel wiring requires a restart.
type reloadWatcher struct {
	path   string
	engine *app.Engine
	logger ports.Logger

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

func newReloadWatcher(path string, engine *app.Engine, logger ports.Logger) *reloadWatcher {
	return &reloadWatcher{
		path:   path,
		engine: engine,
		logger: logger,
	}
}

// start begins watching. The parent directory is watched rather than the
// file itself, since editors and provisioning tools replace config files by
// rename.
func (w *reloadWatcher) start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return err
	}
	w.watcher = watcher

	w.wg.Add(1)
	go w.loop(ctx)

	w.logger.Info("watching config file", ports.String("path", w.path))
	return nil
}

func (w *reloadWatcher) loop(ctx context.Context) {
	defer w.wg.Done()

	base := filepath.Base(w.path)

	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(reloadDebounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", ports.Err(err))

		case <-debounce.C:
			w.apply()
		}
	}
}

// apply re-reads the config file and hands the engine its new settings,
// then requests a full refresh so the change is visible immediately.
func (w *reloadWatcher) apply() {
	cfg := cliconfig.DefaultConfig()
	fc, err := cliconfig.LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", ports.Err(err))
		return
	}
	if err := cliconfig.ApplyFileConfig(&cfg, fc, nil); err != nil {
		w.logger.Warn("config reload failed", ports.Err(err))
		return
	}
	if err := cfg.Validate(); err != nil {
		w.logger.Warn("config reload rejected", ports.Err(err))
		return
	}

	w.engine.UpdateSettings(app.Settings{
		FullRefreshInterval: cfg.FullRefreshInterval,
		CoalesceDelay:       cfg.CoalesceDelay,
		DefaultFourLevel:    cfg.DefaultFourLevel,
	})
	w.engine.TriggerRefresh(false)

	w.logger.Info("config reloaded",
		ports.Duration("full_refresh_interval", cfg.FullRefreshInterval),
		ports.Duration("coalesce_delay", cfg.CoalesceDelay),
		ports.Bool("default_four_level", cfg.DefaultFourLevel),
	)
}

func (w *reloadWatcher) stop() {
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
	w.wg.Wait()
}
