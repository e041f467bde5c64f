package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"", slog.LevelInfo, true},
		{"DEBUG", slog.LevelDebug, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	logger, f, err := OpenFile(dir, slog.LevelInfo)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("fetched series", "symbol", "AAPL")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "symbol=AAPL") {
		t.Errorf("expected structured field in log, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}
}
