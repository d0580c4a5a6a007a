// Package logging configures log/slog for the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logging configuration options.
type Config struct {
	// Level is the minimum log level to output.
	Level slog.Level
	// JSON switches from text to JSON lines.
	JSON bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig reads LOG_LEVEL (DEBUG, INFO, WARN, ERROR); INFO otherwise.
func DefaultConfig() Config {
	level := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = ParseLevel(v)
	}
	return Config{
		Level:  level,
		Output: os.Stderr,
	}
}

// ParseLevel converts a level name to slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds a logger from cfg and installs it as the slog default.
func Setup(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
