package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/internal/config"
	"github.com/tonhe/pricescope/internal/quotes"
	"github.com/tonhe/pricescope/tui/styles"
)

const configUsage = "Usage: pricescope config <path|theme|range|provider|symbol>"

func configCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, configUsage)
		os.Exit(1)
	}

	if args[0] == "path" {
		configPath()
		return
	}
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: pricescope config %s VALUE\n", args[0])
		os.Exit(1)
	}

	switch args[0] {
	case "theme":
		configSetTheme(args[1])
	case "range":
		configSetRange(args[1])
	case "provider":
		configSetProvider(args[1])
	case "symbol":
		configSetSymbol(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, configUsage)
		os.Exit(1)
	}
}

func configPath() {
	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(path)
}

func configSetTheme(name string) {
	if styles.GetThemeByName(name) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'pricescope themes' to see available themes.")
		os.Exit(1)
	}

	cfg, _ := LoadConfig()
	cfg.Theme = name
	saveConfig(cfg)

	fmt.Printf("Default theme set to %q.\n", name)
}

func configSetRange(key string) {
	r, err := chart.LookupRange(strings.ToLower(key))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'pricescope ranges' to see available ranges.")
		os.Exit(1)
	}

	cfg, _ := LoadConfig()
	cfg.DefaultRange = r.Key
	saveConfig(cfg)

	fmt.Printf("Default range set to %s.\n", r.Label)
}

func configSetProvider(name string) {
	name = strings.ToLower(name)
	if !config.ValidProvider(name) {
		fmt.Fprintf(os.Stderr, "Error: unknown provider %q (want one of %s)\n", name, strings.Join(config.Providers, ", "))
		os.Exit(1)
	}

	cfg, _ := LoadConfig()
	cfg.Provider = name
	saveConfig(cfg)

	fmt.Printf("Provider set to %q.\n", name)
}

func configSetSymbol(symbol string) {
	symbol = quotes.NormalizeSymbol(symbol)
	if symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: symbol is required")
		os.Exit(1)
	}

	cfg, _ := LoadConfig()
	cfg.DefaultSymbol = symbol
	saveConfig(cfg)

	fmt.Printf("Default symbol set to %s.\n", symbol)
}

func themesCmd() {
	for _, name := range styles.ListThemes() {
		fmt.Println(name)
	}
}

func rangesCmd() {
	for _, r := range chart.Ranges() {
		fmt.Printf("%-3s  %-3s  %s\n", r.Key, r.Label, r.Window)
	}
}
