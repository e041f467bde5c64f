package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/tonhe/pricescope/cmd"
	"github.com/tonhe/pricescope/internal/config"
	"github.com/tonhe/pricescope/internal/logging"
	"github.com/tonhe/pricescope/internal/quotes"
	"github.com/tonhe/pricescope/internal/watchlist"
	"github.com/tonhe/pricescope/tui"
	"github.com/tonhe/pricescope/tui/styles"
)

func main() {
	// A missing .env is fine; keys may come from the environment or the vault.
	_ = godotenv.Load()

	if len(os.Args) > 1 && cmd.IsSubcommand(os.Args[1]) {
		cmd.Execute(os.Args[1:])
		return
	}

	fs := flag.NewFlagSet("pricescope", flag.ExitOnError)
	symbol := fs.String("symbol", "", "Symbol to chart")
	rangeKey := fs.String("range", "", "Named range: 1d 1w 1m 3m 1y 5y")
	theme := fs.String("theme", "", "Theme override")
	fs.Usage = cmd.PrintUsage
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	cfg, cfgPath := cmd.LoadConfig()
	if *theme != "" {
		if styles.GetThemeByName(*theme) == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", *theme)
			os.Exit(1)
		}
		cfg.Theme = *theme
	}

	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directories: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Discard()
	if dataDir, err := config.GetDataDir(); err == nil {
		level, _ := logging.ParseLevel(cfg.LogLevel)
		if l, f, err := logging.OpenFile(dataDir, level); err == nil {
			logger = l
			defer f.Close()
		}
	}

	provider, closeProvider, err := cmd.OpenProvider(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeProvider()

	wl := watchlist.Default()
	wlPath, err := config.GetWatchlistPath()
	if err == nil {
		if loaded, err := watchlist.Load(wlPath); err == nil {
			wl = loaded
		} else {
			logger.Warn("watchlist", "err", err)
		}
	}

	var store *config.StateStore
	var saved config.State
	if path, err := config.GetStatePath(); err == nil {
		store = config.NewStateStore(path)
		saved, _ = store.Load()
	}
	if *symbol == "" {
		*symbol = saved.Symbol
	}
	if *rangeKey == "" {
		*rangeKey = saved.Range
	}

	model := tui.NewAppModel(tui.Options{
		Config:        cfg,
		ConfigPath:    cfgPath,
		Fetcher:       quotes.NewFetcher(provider, cfg.FetchTimeout, logger),
		State:         store,
		Watchlist:     wl,
		WatchlistPath: wlPath,
		Logger:        logger,
		Symbol:        *symbol,
		Range:         *rangeKey,
		Version:       cmd.Version,
	})

	logger.Info("starting", "provider", provider.Name(), "symbol", *symbol, "range", *rangeKey)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
