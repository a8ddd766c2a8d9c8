// Package logging configures the process logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger tagged with the application name. Level
// defaults to info; STRATA_DEBUG=1 lowers it to debug for injector traces.
func New(app string) zerolog.Logger {
	return NewWithOutput(app, os.Stderr)
}

// NewWithOutput is New with an explicit sink, used by tests.
func NewWithOutput(app string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("STRATA_DEBUG") == "1" {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Str("app", app).Logger()
}
