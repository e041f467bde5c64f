package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/internal/render"
)

func renderCmd(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	sf := seriesFlags{
		symbol: fs.String("symbol", "", "Symbol to chart (default from config)"),
		rng:    fs.String("range", "", "Named range: 1d 1w 1m 3m 1y 5y (default from config)"),
	}
	width := fs.Int("width", 800, "Image width in pixels")
	height := fs.Int("height", 300, "Image height in pixels")
	hoverX := fs.Float64("hover-x", -1, "Pointer x to hover at; negative renders the resting chart")
	currency := fs.String("currency", "", "Currency of the value label (default from config)")
	out := fs.String("out", "", "Output file, .svg or .png")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pricescope render [--symbol SYM] [--range KEY] [--width W] [--height H] [--hover-x X] --out FILE")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *out == "" {
		fmt.Fprintln(os.Stderr, "Error: --out is required")
		fs.Usage()
		os.Exit(1)
	}
	format, err := render.FormatFromPath(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --width and --height must be positive")
		os.Exit(1)
	}

	cfg, _ := LoadConfig()
	logger := stderrLogger(cfg)
	symbol, r := sf.resolve(cfg)
	if *currency == "" {
		*currency = cfg.Currency
	}

	series, err := fetchSeries(cfg, logger, symbol, r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var hover *float64
	if *hoverX >= 0 {
		hover = hoverX
	}
	vp := chart.Viewport{Width: float64(*width), Height: float64(*height)}
	frame := render.Snapshot(series, vp, hover, chart.FrameOptions{
		Palette:     cfg.Palette(),
		FormatValue: chart.MoneyFormatter(*currency),
		FormatTime:  chart.TimeFormatter(r, time.Local),
	})

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := render.Write(f, format, frame, renderTheme(cfg)); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%s %s, %d samples).\n", *out, symbol, r.Label, series.Len())
}
