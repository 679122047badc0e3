package inkwire

import (
	"image"
	"time"

	"github.com/inkwire/inkwire/internal/app"
	"github.com/inkwire/inkwire/internal/domain"
)

// State represents the lifecycle state of an Inkwire instance.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return app.State(s).String()
}

// convertState maps the internal lifecycle state to the public one.
func convertState(s app.State) State {
	return State(s)
}

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// RefreshEvent describes a completed refresh dispatch.
type RefreshEvent struct {
	Mode     domain.RefreshMode
	Rect     image.Rectangle
	Duration time.Duration
}

// RefreshErrorEvent describes a failed refresh cycle. The engine does not
// retry; the next periodic full refresh repairs the panel.
type RefreshErrorEvent struct {
	Error error
	Mode  domain.RefreshMode
}

// EventHandler receives lifecycle and refresh events. Methods are called
// synchronously from the engine goroutine and must return promptly.
type EventHandler interface {
	OnStateChange(StateChangeEvent)
	OnRefresh(RefreshEvent)
	OnRefreshError(RefreshErrorEvent)
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnRefresh(mode domain.RefreshMode, rect image.Rectangle, duration time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnRefresh(RefreshEvent{
		Mode:     mode,
		Rect:     rect,
		Duration: duration,
	})
}

func (e *eventEmitterWrapper) OnRefreshError(err error, mode domain.RefreshMode) {
	if e.handler == nil {
		return
	}
	e.handler.OnRefreshError(RefreshErrorEvent{
		Error: err,
		Mode:  mode,
	})
}
