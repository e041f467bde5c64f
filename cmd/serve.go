package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/tonhe/pricescope/internal/server"
)

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "127.0.0.1:8080", "Listen address")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pricescope serve [--addr HOST:PORT]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, _ := LoadConfig()
	logger := stderrLogger(cfg)
	p, closeFn, err := OpenProvider(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeFn()

	srv := server.New(p, logger, server.Options{
		Symbol:   cfg.DefaultSymbol,
		Range:    cfg.DefaultRange,
		Currency: cfg.Currency,
		Palette:  cfg.Palette(),
		Theme:    renderTheme(cfg),
	})
	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := interruptContext()
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving charts", "addr", *addr, "provider", p.Name())
	fmt.Fprintf(os.Stderr, "Serving on http://%s/chart.svg\n", *addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
