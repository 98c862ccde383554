// Package logging provides zerolog-based structured logging for runcache.
//
// Loggers write to stderr so cached command output on stdout stays clean.
// The console format is used when stderr is a terminal, JSON otherwise, and
// an optional log file can be attached in append mode.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	// Unparseable values fall back to warn.
	Level string

	// Format selects "console" or "json". Empty means auto: console when
	// stderr is a terminal, JSON otherwise.
	Format string

	// File, when non-empty, is a path that receives a copy of all log
	// events in append mode.
	File string
}

// defaultLevel is used when Config.Level is empty or invalid. Warn keeps
// replayed command output free of log noise by default.
const defaultLevel = zerolog.WarnLevel

// isTerminal reports whether the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// New builds a logger from cfg. It returns the logger and a close function
// for the log file handle, which is a no-op when no file is configured.
// A file that cannot be opened is skipped rather than failing the command.
func New(cfg Config) (zerolog.Logger, func() error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = defaultLevel
	}

	var writers []io.Writer
	switch {
	case cfg.Format == "console", cfg.Format == "" && isTerminal(os.Stderr):
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	default:
		writers = append(writers, os.Stderr)
	}

	closeFn := func() error { return nil }
	if cfg.File != "" {
		logFile, fileErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr == nil {
			writers = append(writers, logFile)
			closeFn = logFile.Close
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return logger, closeFn
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger attached to ctx, or a disabled logger if
// none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
