// Package logging builds the structured loggers used by the CLI and the
// terminal dashboard.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/nhle/zero-hour/internal/model"
)

// ParseLevel maps a config level name (debug, info, warn, error) to a
// slog.Level. An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parsing log level %q: %w", name, err)
	}
	return level, nil
}

// New returns a logger writing to w. Terminals get the text format,
// anything else (files, pipes, buffers) gets JSON.
func New(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

// NewCommandLogger returns the logger used by CLI commands, normally
// writing to stderr.
func NewCommandLogger(w io.Writer, cfg model.LogConfig) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return New(w, level), nil
}

// OpenFile returns a logger appending to cfg.File, for use while the
// dashboard owns the terminal. The returned func closes the file.
func OpenFile(cfg model.LogConfig) (*slog.Logger, func(), error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if cfg.File == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}
	return New(file, level), func() { file.Close() }, nil
}
