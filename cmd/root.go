package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// knownSubcommands is the set of CLI subcommands that bypass the TUI.
var knownSubcommands = map[string]bool{
	"render":     true,
	"export":     true,
	"serve":      true,
	"credential": true,
	"config":     true,
	"ranges":     true,
	"themes":     true,
	"version":    true,
	"help":       true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Execute dispatches to the appropriate CLI subcommand handler.
func Execute(args []string) {
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "render":
		renderCmd(args[1:])
	case "export":
		exportCmd(args[1:])
	case "serve":
		serveCmd(args[1:])
	case "credential":
		credentialCmd(args[1:])
	case "config":
		configCmd(args[1:])
	case "ranges":
		rangesCmd()
	case "themes":
		themesCmd()
	case "version":
		fmt.Println("pricescope v" + Version)
	case "help":
		PrintUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		PrintUsage()
		os.Exit(1)
	}
}

// interruptContext is cancelled by Ctrl-C.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// PrintUsage prints the command overview.
func PrintUsage() {
	fmt.Println(`pricescope - interactive price charts

Usage:
  pricescope                        Launch TUI chart
  pricescope --symbol SYM           Launch with a symbol
  pricescope --range KEY            Launch with a range (1d 1w 1m 3m 1y 5y)
  pricescope --theme NAME           Launch with theme override
  pricescope render [flags]         Render a chart to SVG or PNG
  pricescope export [flags]         Export a series to CSV, XLSX or PNG
  pricescope serve [--addr ADDR]    Serve charts over HTTP
  pricescope credential <cmd>       Manage provider API keys
  pricescope config <cmd>           Manage configuration
  pricescope ranges                 List named ranges
  pricescope themes                 List available themes
  pricescope version                Show version
  pricescope help                   Show this help

Render:
  pricescope render --symbol AAPL --range 1m --width 800 --height 300 \
                    --hover-x 200 --out chart.svg

Export:
  pricescope export --symbol AAPL --range 1y --format csv|xlsx|png [--out FILE]

Credential Commands:
  pricescope credential list               List stored API keys
  pricescope credential add NAME           Add an API key (interactive)
  pricescope credential remove NAME        Remove an API key

Config Commands:
  pricescope config path                   Show config file path
  pricescope config theme NAME             Set default theme
  pricescope config range KEY              Set default range
  pricescope config provider NAME          Set data provider (yahoo, eodhd, csv)
  pricescope config symbol SYM             Set default symbol`)
}
