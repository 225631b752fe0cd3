// Package logging builds the slog logger used by qment. The TUI owns the
// terminal, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gravitrone/qment/internal/config"
)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open returns a logger appending to cfg.LogFile, and a function closing the
// file. An empty LogFile discards output.
func Open(cfg *config.Config) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if cfg == nil || cfg.LogFile == "" {
		return Discard(), noop, nil
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, noop, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
		return nil, noop, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, noop, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f.Close, nil
}
