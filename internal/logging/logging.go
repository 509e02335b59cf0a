// Package logging configures structured JSON logging with size-based
// file rotation. The CLI logs to a file by default so terminal output
// stays clean; stderr mirroring is opt-in for debugging.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config controls log destination and verbosity.
type Config struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string
	// FilePath is the log file. Empty disables file logging.
	FilePath string
	// MaxSizeMB triggers rotation when the file would exceed it.
	MaxSizeMB int
	// MaxFiles is how many rotated files to keep.
	MaxFiles int
	// Stderr mirrors log output to stderr.
	Stderr bool
}

// DefaultConfig returns file-only logging at warn level.
func DefaultConfig() Config {
	return Config{
		Level:     "warn",
		FilePath:  DefaultLogPath(),
		MaxSizeMB: 5,
		MaxFiles:  3,
	}
}

// DefaultLogPath places the log under the XDG state directory.
func DefaultLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "concord", "concord.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "concord", "concord.log")
	}
	return filepath.Join(home, ".local", "state", "concord", "concord.log")
}

// Setup installs the configured logger as the slog default and returns
// a cleanup function that flushes and closes the log file.
func Setup(cfg Config) (func(), error) {
	var writers []io.Writer
	var rotating *RotatingWriter

	if cfg.FilePath != "" {
		w, err := NewRotatingWriter(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxFiles)
		if err != nil {
			return nil, err
		}
		rotating = w
		writers = append(writers, w)
	}
	if cfg.Stderr {
		writers = append(writers, os.Stderr)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})
	slog.SetDefault(slog.New(handler))

	cleanup := func() {
		if rotating != nil {
			_ = rotating.Close()
		}
	}
	return cleanup, nil
}

// ParseLevel converts a level name to a slog.Level, defaulting to warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
