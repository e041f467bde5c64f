package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme 'solarized-dark', got %q", cfg.Theme)
	}
	if cfg.Provider != "yahoo" {
		t.Errorf("expected provider 'yahoo', got %q", cfg.Provider)
	}
	if cfg.DefaultRange != "1m" {
		t.Errorf("expected default range '1m', got %q", cfg.DefaultRange)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("expected cache ttl 5m, got %v", cfg.CacheTTL)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	cfg := DefaultConfig()
	cfg.Theme = "dracula"
	cfg.Provider = "csv"
	cfg.CacheTTL = time.Hour
	cfg.Colors.Focus = "#ffffff"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.Theme != "dracula" {
		t.Errorf("expected theme 'dracula', got %q", loaded.Theme)
	}
	if loaded.Provider != "csv" {
		t.Errorf("expected provider 'csv', got %q", loaded.Provider)
	}
	if loaded.CacheTTL != time.Hour {
		t.Errorf("expected cache ttl 1h, got %v", loaded.CacheTTL)
	}
	if loaded.Palette().Focus != "#ffffff" {
		t.Errorf("expected focus override, got %q", loaded.Palette().Focus)
	}
	if loaded.Palette().Positive != chart.DefaultPalette.Positive {
		t.Errorf("expected default positive colour, got %q", loaded.Palette().Positive)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Theme != "solarized-dark" {
		t.Errorf("expected default theme, got %q", cfg.Theme)
	}
}

func TestConfigUnknownRangeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("default_range = \"10y\"\nfetch_timeout = \"3s\"\n"), 0600)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.DefaultRange != chart.DefaultRangeKey {
		t.Errorf("expected fallback to %q, got %q", chart.DefaultRangeKey, cfg.DefaultRange)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("expected fetch timeout 3s, got %v", cfg.FetchTimeout)
	}
}

func TestValidProvider(t *testing.T) {
	if !ValidProvider("eodhd") || ValidProvider("bloomberg") {
		t.Error("ValidProvider() mismatch")
	}
}

func TestStateStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.toml")
	store := NewStateStore(path)

	st, err := store.Load()
	if err != nil || st != (State{}) {
		t.Fatalf("expected empty state, got %+v, %v", st, err)
	}

	var _ chart.Persister = store
	if err := store.SaveRange("1y"); err != nil {
		t.Fatalf("SaveRange() error: %v", err)
	}
	if err := store.SaveSymbol("MSFT"); err != nil {
		t.Fatalf("SaveSymbol() error: %v", err)
	}

	st, err = NewStateStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if st.Range != "1y" || st.Symbol != "MSFT" {
		t.Errorf("expected {MSFT 1y}, got %+v", st)
	}
}
