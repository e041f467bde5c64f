package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tonhe/pricescope/internal/export"
	"github.com/tonhe/pricescope/tui/styles"
)

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	sf := seriesFlags{
		symbol: fs.String("symbol", "", "Symbol to export (default from config)"),
		rng:    fs.String("range", "", "Named range: 1d 1w 1m 3m 1y 5y (default from config)"),
	}
	format := fs.String("format", "csv", "Output format: csv, xlsx or png")
	out := fs.String("out", "", "Output file (default SYMBOL-RANGE.FORMAT)")
	width := fs.Int("width", export.DefaultReportOptions.Width, "Report width (png only)")
	height := fs.Int("height", export.DefaultReportOptions.Height, "Report height (png only)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pricescope export [--symbol SYM] [--range KEY] [--format csv|xlsx|png] [--out FILE]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	*format = strings.ToLower(*format)
	if *format != "csv" && *format != "xlsx" && *format != "png" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		fs.Usage()
		os.Exit(1)
	}

	cfg, _ := LoadConfig()
	logger := stderrLogger(cfg)
	symbol, r := sf.resolve(cfg)
	if *out == "" {
		*out = fmt.Sprintf("%s-%s.%s", symbol, r.Key, *format)
	}

	series, err := fetchSeries(cfg, logger, symbol, r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	switch *format {
	case "csv":
		err = export.CSV(f, series)
	case "xlsx":
		err = export.XLSX(f, symbol, r, series)
	case "png":
		dark := true
		if t := styles.GetThemeByName(cfg.Theme); t != nil {
			dark = t.Dark()
		}
		var data []byte
		data, err = export.Report(symbol, r, series, export.ReportOptions{Width: *width, Height: *height, Dark: dark})
		if err == nil {
			_, err = f.Write(data)
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(*out)
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%s %s, %d samples).\n", *out, symbol, r.Label, series.Len())
}
