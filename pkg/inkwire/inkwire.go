package inkwire

import (
	"context"
	"errors"
	"sync"

	"github.com/inkwire/inkwire/internal/app"
	"github.com/inkwire/inkwire/internal/domain"
	"github.com/inkwire/inkwire/internal/ports"
)

// Inkwire is the reconciler instance embedding applications interact with.
// Use New() to create one, then Start() to begin reconciling.
type Inkwire struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	engine    *app.Engine
	source    ports.FrameSource
	panel     ports.Panel
	logger    ports.Logger
	watcher   *reloadWatcher

	mu        sync.RWMutex
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// New creates a new Inkwire instance wiring the given source and panel.
// The instance is created in StateStopped; call Start() to begin.
// Returns an error if the configuration is invalid.
func New(cfg Config, source FrameSource, panel Panel, opts ...Option) (*Inkwire, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil || panel == nil {
		return nil, errors.New("inkwire: source and panel are required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	lifecycle := app.NewLifecycle(o.logger, emitter)

	engine := app.NewEngine(app.Settings{
		FullRefreshInterval: cfg.FullRefreshInterval,
		CoalesceDelay:       cfg.CoalesceDelay,
		DefaultFourLevel:    cfg.DefaultFourLevel,
	}, source, panel, o.logger, emitter)

	w := &Inkwire{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle,
		engine:    engine,
		source:    source,
		panel:     panel,
		logger:    o.logger,
	}

	if o.reloadPath != "" {
		w.watcher = newReloadWatcher(o.reloadPath, engine, o.logger)
	}

	return w, nil
}

// Start initializes the panel and begins reconciling in the background.
// Returns immediately after starting the engine goroutine.
// Returns an error if already running or if panel initialization fails.
func (w *Inkwire) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	if err := w.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.lifecycle.SetCancel(cancel)

	if err := w.panel.Init(runCtx); err != nil {
		cancel()
		_ = w.lifecycle.TransitionTo(app.StateCrashed, "panel init failed")
		return err
	}

	if w.watcher != nil {
		if err := w.watcher.start(runCtx); err != nil {
			// Reload is a convenience; a broken watcher must not keep
			// the panel from running.
			w.logger.Warn("config reload disabled", ports.Err(err))
			w.watcher = nil
		}
	}

	w.lifecycle.AddWorker()
	go func() {
		defer w.lifecycle.WorkerDone()

		if err := w.lifecycle.TransitionTo(app.StateRunning, "engine starting"); err != nil {
			w.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := w.engine.Run(runCtx)

		switch {
		case err != nil && !errors.Is(err, context.Canceled):
			w.logger.Error("engine error", ports.Err(err))
			_ = w.lifecycle.TransitionTo(app.StateCrashed, err.Error())
			w.lifecycle.Cancel()
			w.closeCollaborators()
		case err == nil && runCtx.Err() == nil:
			// The mutation stream closed on its own. Stop() will never be
			// called for this run, so shut down from here; the transition
			// guard keeps this from racing a concurrent Stop().
			if w.lifecycle.TransitionTo(app.StateStopping, "mutation stream closed") == nil {
				w.lifecycle.Cancel()
				w.closeCollaborators()
				_ = w.lifecycle.TransitionTo(app.StateStopped, "mutation stream closed")
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the reconciler, waiting for an in-flight
// refresh to finish, then closes the source and the panel.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (w *Inkwire) Stop() error {
	w.mu.Lock()

	if !w.lifecycle.CanStop() {
		w.mu.Unlock()
		return domain.ErrNotRunning
	}

	if err := w.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		w.mu.Unlock()
		return err
	}

	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	err := w.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	w.closeCollaborators()

	if err != nil {
		_ = w.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = w.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// closeCollaborators releases the watcher, source and panel exactly once,
// whether shutdown was driven by Stop(), a crash, or the stream closing.
func (w *Inkwire) closeCollaborators() {
	w.closeOnce.Do(func() {
		if w.watcher != nil {
			w.watcher.stop()
		}
		if err := w.source.Close(); err != nil {
			w.logger.Error("source close failed", ports.Err(err))
		}
		if err := w.panel.Close(); err != nil {
			w.logger.Error("panel close failed", ports.Err(err))
		}
	})
}

// TriggerRefresh requests a full refresh outside the regular cadence.
// force16 forces the full-depth flashy mode (used to clear ghosting);
// otherwise the refresh is classified from visibility counts as usual.
// Concurrent requests coalesce into a single refresh pass.
// Safe to call concurrently from any goroutine.
func (w *Inkwire) TriggerRefresh(force16 bool) {
	w.engine.TriggerRefresh(force16)
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (w *Inkwire) Status() State {
	return convertState(w.lifecycle.State())
}
