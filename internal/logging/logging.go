// Package logging builds the slog logger shared by every command. The TUI
// owns the terminal, so logs always go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the log file created inside the data directory.
const FileName = "pricescope.log"

// ParseLevel maps debug|info|warn|error onto a slog level. An empty string
// means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenFile opens <dir>/pricescope.log for appending and returns a logger
// writing to it, along with the file so the caller can close it.
func OpenFile(dir string, level slog.Level) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError+1)
}
