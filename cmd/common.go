package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/internal/config"
	"github.com/tonhe/pricescope/internal/credential"
	"github.com/tonhe/pricescope/internal/logging"
	"github.com/tonhe/pricescope/internal/quotes"
	"github.com/tonhe/pricescope/internal/render"
	"github.com/tonhe/pricescope/tui/styles"
	"golang.org/x/term"
)

// Version is the release reported by `pricescope version`.
const Version = "0.1.0"

// MasterKeyEnv holds the vault password for non-interactive use.
const MasterKeyEnv = "PRICESCOPE_MASTER_KEY"

// LoadConfig loads the config from disk, falling back to defaults. It
// returns the path the config lives at, empty when it cannot be resolved.
func LoadConfig() (*config.Config, string) {
	path, err := config.GetConfigPath()
	if err != nil {
		return config.DefaultConfig(), ""
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultConfig(), path
	}
	return cfg, path
}

// saveConfig writes the config to disk, creating directories as needed.
func saveConfig(cfg *config.Config) {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
}

// stderrLogger is the logger of CLI subcommands.
func stderrLogger(cfg *config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return logging.New(os.Stderr, level)
}

// OpenProvider builds the configured provider, wrapped in the sqlite cache
// when cache_ttl is positive. The returned func releases the cache.
func OpenProvider(cfg *config.Config, logger *slog.Logger) (quotes.Provider, func(), error) {
	var p quotes.Provider
	switch cfg.Provider {
	case "", "yahoo":
		p = quotes.NewYahoo()
	case "eodhd":
		p = quotes.NewEODHD(credential.LookupKey(openVaultQuiet(), "eodhd", quotes.EODHDTokenEnv))
	case "csv":
		if cfg.CSVDir == "" {
			return nil, nil, fmt.Errorf("provider csv needs csv_dir in the config")
		}
		p = quotes.NewCSVFile(cfg.CSVDir)
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	noop := func() {}
	if cfg.CacheTTL <= 0 || cfg.Provider == "csv" {
		return p, noop, nil
	}
	path, err := config.GetCachePath()
	if err == nil {
		err = config.EnsureDirs()
	}
	var cache *quotes.Cache
	if err == nil {
		cache, err = quotes.OpenCache(path)
	}
	if err != nil {
		logger.Warn("series cache disabled", "err", err)
		return p, noop, nil
	}
	return quotes.NewCached(p, cache, cfg.CacheTTL, logger), func() { cache.Close() }, nil
}

// openStore opens the credential vault, prompting for the master password if
// needed. Tries empty password first to support no-password vaults.
func openStore() *credential.FileStore {
	path, err := config.GetVaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	store, err := credential.OpenFileStore(path, []byte(""))
	if err == nil {
		return store
	}

	store, err = credential.OpenFileStore(path, getMasterPassword())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening credential vault: %v\n", err)
		os.Exit(1)
	}
	return store
}

// openVaultQuiet opens an existing vault without failing the caller. It
// prompts only when stdin is a terminal; otherwise a nil vault falls back
// to environment variables.
func openVaultQuiet() credential.Vault {
	path, err := config.GetVaultPath()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if store, err := credential.OpenFileStore(path, []byte("")); err == nil {
		return store
	}
	password := []byte(os.Getenv(MasterKeyEnv))
	if len(password) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil
		}
		password = getMasterPassword()
	}
	store, err := credential.OpenFileStore(path, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: credential vault: %v\n", err)
		return nil
	}
	return store
}

// getMasterPassword reads the master password from PRICESCOPE_MASTER_KEY or prompts.
func getMasterPassword() []byte {
	if key := os.Getenv(MasterKeyEnv); key != "" {
		return []byte(key)
	}

	fmt.Fprint(os.Stderr, "Master password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // newline after password input
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	return password
}

// renderTheme derives image colours from the configured terminal theme.
func renderTheme(cfg *config.Config) render.Theme {
	t := styles.GetThemeByName(cfg.Theme)
	if t == nil {
		return render.DefaultTheme
	}
	return render.Theme{
		Background: styles.Hex(t.Base00),
		Text:       styles.Hex(t.Base05),
		Crosshair:  styles.Hex(t.Base04),
	}
}

// seriesFlags are the flags shared by commands that fetch one series.
type seriesFlags struct {
	symbol *string
	rng    *string
}

// resolve validates the flags against the config defaults.
func (f seriesFlags) resolve(cfg *config.Config) (string, chart.NamedRange) {
	symbol := quotes.NormalizeSymbol(*f.symbol)
	if symbol == "" {
		symbol = quotes.NormalizeSymbol(cfg.DefaultSymbol)
	}
	key := *f.rng
	if key == "" {
		key = cfg.DefaultRange
	}
	r, err := chart.LookupRange(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pricescope ranges' to see available ranges.")
		os.Exit(1)
	}
	return symbol, r
}

// fetchSeries fetches one series through the configured provider. The cache
// and interrupt handler are released before it returns.
func fetchSeries(cfg *config.Config, logger *slog.Logger, symbol string, r chart.NamedRange) (*chart.Series, error) {
	p, closeFn, err := OpenProvider(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	ctx, stop := interruptContext()
	defer stop()
	f := quotes.NewFetcher(p, cfg.FetchTimeout, logger)
	res := f.Fetch(ctx, symbol, r)
	if res.Err != nil {
		return nil, fmt.Errorf("fetching %s (%s): %w", symbol, r.Label, res.Err)
	}
	return res.Series, nil
}
