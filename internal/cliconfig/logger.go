package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger returns the zerolog logger used by the CLI, writing human-readable
// console output to stderr.
func Logger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}
