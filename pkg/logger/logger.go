package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	Service   string
	Env       string
	Level     string
	AddSource bool
	// Writer defaults to stdout.
	Writer io.Writer
}

func New(opts Options) *slog.Logger {
	level := parseLevel(opts.Level)

	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.AddSource,
	})

	base := slog.New(h).With(
		"service", opts.Service,
		"env", opts.Env,
	)

	slog.SetDefault(base)
	return base
}

// StatusLevel is the level a response with the given HTTP status is logged
// at: error for 5xx, warn for 4xx, info otherwise.
func StatusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
