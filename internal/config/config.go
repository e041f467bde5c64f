package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tonhe/pricescope/internal/chart"
)

// Providers lists the accepted values of the provider key.
var Providers = []string{"yahoo", "eodhd", "csv"}

// Colors overrides the chart palette. Empty fields keep the default.
type Colors struct {
	Positive string `toml:"positive,omitempty"`
	Negative string `toml:"negative,omitempty"`
	Focus    string `toml:"focus,omitempty"`
}

type Config struct {
	Theme           string        `toml:"theme"`
	Provider        string        `toml:"provider"`
	DefaultSymbol   string        `toml:"default_symbol"`
	DefaultRange    string        `toml:"default_range"`
	Currency        string        `toml:"currency"`
	CacheTTL        time.Duration `toml:"-"`
	CacheTTLStr     string        `toml:"cache_ttl"`
	FetchTimeout    time.Duration `toml:"-"`
	FetchTimeoutStr string        `toml:"fetch_timeout"`
	LogLevel        string        `toml:"log_level"`
	CSVDir          string        `toml:"csv_dir"`
	Colors          Colors        `toml:"colors"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:           "solarized-dark",
		Provider:        "yahoo",
		DefaultSymbol:   "AAPL",
		DefaultRange:    chart.DefaultRangeKey,
		Currency:        "USD",
		CacheTTL:        5 * time.Minute,
		CacheTTLStr:     "5m0s",
		FetchTimeout:    20 * time.Second,
		FetchTimeoutStr: "20s",
		LogLevel:        "info",
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; an unknown range key falls back to the default range.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if d, err := time.ParseDuration(cfg.CacheTTLStr); err == nil {
		cfg.CacheTTL = d
	}
	if d, err := time.ParseDuration(cfg.FetchTimeoutStr); err == nil {
		cfg.FetchTimeout = d
	}
	if _, err := chart.LookupRange(cfg.DefaultRange); err != nil {
		cfg.DefaultRange = chart.DefaultRangeKey
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	cfg.CacheTTLStr = cfg.CacheTTL.String()
	cfg.FetchTimeoutStr = cfg.FetchTimeout.String()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// ValidProvider reports whether name is one of Providers.
func ValidProvider(name string) bool {
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}

// Palette merges the configured colours over chart.DefaultPalette.
func (c *Config) Palette() chart.Palette {
	p := chart.DefaultPalette
	if c.Colors.Positive != "" {
		p.Positive = c.Colors.Positive
	}
	if c.Colors.Negative != "" {
		p.Negative = c.Colors.Negative
	}
	if c.Colors.Focus != "" {
		p.Focus = c.Colors.Focus
	}
	return p
}
