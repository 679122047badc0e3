package inkwire

import (
	"github.com/inkwire/inkwire/internal/ports"
)

// FrameSource is the renderer-side collaborator: pixel captures plus the
// mutation stream. See internal/ports for the contract.
type FrameSource = ports.FrameSource

// Panel is the display-side collaborator accepting packed 4bpp windows.
type Panel = ports.Panel

// Logger is the structured logging interface used throughout inkwire.
type Logger = ports.Logger

// Option configures optional behavior of an Inkwire instance.
type Option func(*options)

// options holds the optional configuration for an Inkwire instance.
type options struct {
	logger       ports.Logger
	eventHandler EventHandler
	reloadPath   string
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: noopLogger{},
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for lifecycle and refresh events.
// Events are called synchronously from the engine goroutine.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithConfigReload watches the given TOML config file and applies timing and
// policy changes to the running engine without a restart. A change also
// requests a full refresh so the new policy is visible immediately.
func WithConfigReload(path string) Option {
	return func(o *options) {
		o.reloadPath = path
	}
}

// noopLogger discards all log messages.
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...ports.Field) {}
func (noopLogger) Info(msg string, fields ...ports.Field)  {}
func (noopLogger) Warn(msg string, fields ...ports.Field)  {}
func (noopLogger) Error(msg string, fields ...ports.Field) {}
