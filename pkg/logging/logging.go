// Package logging configures structured logging for log/slog.
// Development output is colored with tint; production output is JSON.
//
// Usage:
//
//	logging.Configure(os.Stderr, "json", "warn")
//
// Format is pretty or json; level is debug, info, warn or error (default info).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Configure installs the default logger with the given format and level names.
func Configure(w io.Writer, format, level string) {
	slog.SetDefault(slog.New(NewHandler(w, format, ParseLevel(level))))
}

// NewHandler builds a JSON handler for format "json" and a tint handler otherwise.
// Colors are only emitted when w is a terminal.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    !isTerminal(w),
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
