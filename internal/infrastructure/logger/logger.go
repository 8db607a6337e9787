// Package logger configures the zerolog logger used by the CLI.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config selects how xact reports progress and rejected records.
//
// Logs never share a stream with the balance report: the CLI prints CSV on
// stdout, so Out defaults to stderr and callers only override it in tests.
type Config struct {
	Level  string    // debug, info, warn, error, disabled; anything else means info
	Format string    // "console" for humans, anything else for JSON lines
	Out    io.Writer // nil means os.Stderr
}

// New builds a timestamped zerolog logger writing to cfg.Out.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	var output io.Writer = out

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	level := parseLevel(cfg.Level)

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
