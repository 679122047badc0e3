package domain

import "errors"

// Domain errors represent error conditions in the inkwire domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrRasterSize is returned when a raster's sample count does not match
	// the rectangle it claims to cover, or is not packable (odd length).
	ErrRasterSize = errors.New("inkwire: raster size mismatch")

	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("inkwire: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("inkwire: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("inkwire: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("inkwire: invalid configuration")
)
