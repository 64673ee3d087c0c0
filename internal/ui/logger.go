package ui

import (
	"io"
	"os"

	"github.com/pterm/pterm"
)

// LogLevel maps the CLI verbosity flags to a pterm level.
func LogLevel(debug, trace bool) pterm.LogLevel {
	switch {
	case trace:
		return pterm.LogLevelTrace
	case debug:
		return pterm.LogLevelDebug
	default:
		return pterm.LogLevelInfo
	}
}

// NewLogger returns the structured logger shared by all packages. Output goes
// to stderr so tables on stdout stay clean.
func NewLogger(level pterm.LogLevel) *pterm.Logger {
	return pterm.DefaultLogger.
		WithLevel(level).
		WithWriter(os.Stderr).
		WithTime(true).
		WithTimeFormat("15:04:05")
}

// DiscardLogger returns a logger that drops everything. Used in tests and
// when a caller does not supply one.
func DiscardLogger() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled).WithWriter(io.Discard)
}
