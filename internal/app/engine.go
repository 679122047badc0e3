package app

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/inkwire/inkwire/internal/codec"
	"github.com/inkwire/inkwire/internal/domain"
	"github.com/inkwire/inkwire/internal/ports"
)

// Settings are the engine parameters that may change at runtime (config
// reload). Everything else about an engine is fixed at construction.
type Settings struct {
	// FullRefreshInterval is the cadence of automatic full refreshes.
	FullRefreshInterval time.Duration

	// CoalesceDelay is the window during which dirty regions accumulate
	// before a drain pass. Zero disables coalescing entirely: every
	// region is processed synchronously as it arrives.
	CoalesceDelay time.Duration

	// DefaultFourLevel makes 4-level the default full-refresh depth,
	// letting visible regions opt out instead of opting in.
	DefaultFourLevel bool
}

// RefreshEmitter is called on refresh success or failure.
type RefreshEmitter interface {
	OnRefresh(mode domain.RefreshMode, rect image.Rectangle, duration time.Duration)
	OnRefreshError(err error, mode domain.RefreshMode)
}

// Engine reconciles the renderer's mutation stream with the panel.
//
// All mutable state (the pending-region queue, the refresh timers) is owned
// by the goroutine running Run, which is also the only goroutine that
// touches the source and the panel. Mutations, explicit refresh requests and
// settings updates enter through channels.
type Engine struct {
	settings Settings
	source   ports.FrameSource
	panel    ports.Panel
	logger   ports.Logger
	emitter  RefreshEmitter

	queue      regionQueue
	refreshReq chan bool
	updates    chan Settings
}

// NewEngine creates an engine with the given collaborators. The emitter may
// be nil.
func NewEngine(settings Settings, source ports.FrameSource, panel ports.Panel, logger ports.Logger, emitter RefreshEmitter) *Engine {
	return &Engine{
		settings:   settings,
		source:     source,
		panel:      panel,
		logger:     logger,
		emitter:    emitter,
		refreshReq: make(chan bool, 8),
		updates:    make(chan Settings, 1),
	}
}

// TriggerRefresh requests a full refresh outside the regular cadence.
// force16 selects the full-depth flashy mode unconditionally; without it the
// refresh is classified from visibility counts as usual.
//
// Requests coalesce: all requests pending when the engine gets around to
// refreshing are served by a single pass, forced to 16 levels if any of them
// asked for it. Requests beyond the buffer are dropped, which is safe for
// the same reason.
func (e *Engine) TriggerRefresh(force16 bool) {
	select {
	case e.refreshReq <- force16:
	default:
	}
}

// UpdateSettings replaces the engine settings. The new full-refresh interval
// takes effect when the timer next re-arms; a pending update not yet applied
// is superseded.
func (e *Engine) UpdateSettings(s Settings) {
	for {
		select {
		case e.updates <- s:
			return
		case <-e.updates:
		}
	}
}

// Run executes the reconciliation loop: one initial full refresh, then
// automatic full refreshes on the configured cadence, interleaved with
// coalesced partial refreshes driven by the mutation stream.
//
// Run returns when the context is canceled or the mutation stream closes.
func (e *Engine) Run(ctx context.Context) error {
	e.fullRefresh(ctx, false)

	fullTimer := time.NewTimer(e.settings.FullRefreshInterval)
	defer fullTimer.Stop()

	// Armed only while the queue is waiting out a coalescing window.
	drainTimer := time.NewTimer(time.Hour)
	stopTimer(drainTimer)
	defer drainTimer.Stop()

	events := e.source.Events()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case s := <-e.updates:
			e.settings = s
			rearmTimer(fullTimer, e.settings.FullRefreshInterval)

		case batch, ok := <-events:
			if !ok {
				e.logger.Info("mutation stream closed, stopping engine")
				return nil
			}
			e.handleBatch(ctx, batch, drainTimer)

		case force16 := <-e.refreshReq:
			// Serve every request already queued with one pass.
			for {
				select {
				case f := <-e.refreshReq:
					force16 = force16 || f
					continue
				default:
				}
				break
			}
			stopTimer(drainTimer)
			e.fullRefresh(ctx, force16)
			rearmTimer(fullTimer, e.settings.FullRefreshInterval)

		case <-fullTimer.C:
			stopTimer(drainTimer)
			e.fullRefresh(ctx, false)
			fullTimer.Reset(e.settings.FullRefreshInterval)

		case <-drainTimer.C:
			e.drain(ctx)
		}
	}
}

// handleBatch merges one mutation batch into a refresh window and either
// processes it immediately (coalescing disabled) or queues it, arming the
// drain timer when the queue was idle.
func (e *Engine) handleBatch(ctx context.Context, batch domain.MutationBatch, drainTimer *time.Timer) {
	rect, ok := batch.Merged()
	if !ok {
		return
	}

	region := pendingRegion{
		rect:      rect,
		fourLevel: batch.ExplicitFourLevel(),
	}

	if e.settings.CoalesceDelay <= 0 {
		e.partialRefresh(ctx, region)
		return
	}

	if e.queue.push(region) {
		rearmTimer(drainTimer, e.settings.CoalesceDelay)
	}
}

// drain processes the queued regions in FIFO order. Regions that duplicate
// an already-processed window within the same pass are discarded without
// re-capture. The queue is empty and idle when drain returns.
func (e *Engine) drain(ctx context.Context) {
	seen := make(map[image.Rectangle]bool)

	for {
		region, ok := e.queue.pop()
		if !ok {
			return
		}
		if seen[region.rect] {
			continue
		}
		seen[region.rect] = true

		e.partialRefresh(ctx, region)
	}
}

// fullRefresh captures the whole frame, classifies it, and dispatches it to
// the panel. Pending partial updates are discarded first: an authoritative
// full-screen repaint subsumes them. Failures abort only this cycle; the
// caller re-arms the timer regardless so a transient fault self-heals on the
// next periodic refresh.
func (e *Engine) fullRefresh(ctx context.Context, force16 bool) {
	e.queue.clear()

	counts, err := e.source.VisibilityCounts(ctx)
	if err != nil {
		e.logger.Error("visibility query failed", ports.Err(err))
		if e.emitter != nil {
			// Classification never ran; report against the full-depth mode
			// this pass was aiming for.
			e.emitter.OnRefreshError(err, domain.Full16)
		}
		return
	}
	mode := ClassifyFull(e.settings.DefaultFourLevel, counts, force16)

	raster, err := e.source.CaptureRaster(ctx, nil)
	if err != nil {
		e.logger.Error("full capture failed", ports.Err(err))
		if e.emitter != nil {
			e.emitter.OnRefreshError(err, mode)
		}
		return
	}

	e.dispatch(ctx, raster, mode)
}

// partialRefresh captures one coalesced window, classifies it, and
// dispatches it. A failed capture drops the region; the periodic full
// refresh repairs whatever was lost.
func (e *Engine) partialRefresh(ctx context.Context, region pendingRegion) {
	rect := region.rect
	raster, err := e.source.CaptureRaster(ctx, &rect)
	if err != nil {
		e.logger.Error("partial capture failed", ports.Err(err), ports.Rect("rect", rect))
		return
	}

	mode := ClassifyPartial(region.fourLevel, raster.Pix)
	e.dispatch(ctx, raster, mode)
}

// dispatch packs a captured raster under the mode's quantization rule and
// hands it to the panel.
func (e *Engine) dispatch(ctx context.Context, raster *image.Gray, mode domain.RefreshMode) {
	rect := raster.Bounds()
	if len(raster.Pix) != rect.Dx()*rect.Dy() {
		e.logger.Error("capture size mismatch",
			ports.Err(fmt.Errorf("%w: got %d samples for %s", domain.ErrRasterSize, len(raster.Pix), rect)))
		return
	}

	packed, err := codec.Pack(raster.Pix, codec.PackModeFor(mode))
	if err != nil {
		e.logger.Error("pack failed", ports.Err(err), ports.Rect("rect", rect))
		return
	}

	start := time.Now()
	if err := e.panel.Draw(ctx, packed, rect, mode); err != nil {
		e.logger.Error("panel draw failed",
			ports.Err(err),
			ports.Stringer("mode", mode),
			ports.Rect("rect", rect),
		)
		if e.emitter != nil {
			e.emitter.OnRefreshError(err, mode)
		}
		return
	}

	e.logger.Debug("refreshed",
		ports.Stringer("mode", mode),
		ports.Rect("rect", rect),
		ports.Duration("duration", time.Since(start)),
	)
	if e.emitter != nil {
		e.emitter.OnRefresh(mode, rect, time.Since(start))
	}
}

// stopTimer disarms a timer and drains a fired-but-unread tick.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

// rearmTimer resets a timer to d, regardless of its current state.
func rearmTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}
