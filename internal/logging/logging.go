// Package logging builds the process logger: log/slog on top of a
// charmbracelet/log handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseLevel maps a level name to a charm log level. Unknown names are info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New returns a slog.Logger writing human-readable lines to w.
func New(w io.Writer, level string, timestamps bool) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: timestamps,
		TimeFormat:      "15:04:05",
	})
	return slog.New(handler)
}

// Setup installs the default logger on stderr. verbose forces debug.
func Setup(level string, verbose bool) *slog.Logger {
	if verbose {
		level = "debug"
	}
	if env := os.Getenv("SCHEDULEDISPLAY_LOG_LEVEL"); env != "" && !verbose {
		level = env
	}
	logger := New(os.Stderr, level, true)
	slog.SetDefault(logger)
	return logger
}
