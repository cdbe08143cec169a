// Package logging configures the charmbracelet/log loggers used across
// tsdoclint and carries them through contexts.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals // Process-wide fallback logger.
var defaultLogger atomic.Pointer[log.Logger]

// New returns a stderr logger at the given level. See ParseLevel.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewInteractive returns a logger for user-facing command output on w.
// Terminals get the styled text format. Anything else gets logfmt with
// timestamps, which keeps piped output greppable.
func NewInteractive(w io.Writer, level string) *log.Logger {
	opts := log.Options{Formatter: log.LogfmtFormatter, ReportTimestamp: true}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		opts = log.Options{Formatter: log.TextFormatter}
	}

	logger := log.NewWithOptions(w, opts)
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a level name to a log level, ignoring case. "warning" is
// accepted for "warn". Unknown names mean info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	parsed, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger, creating an info-level one on
// first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
