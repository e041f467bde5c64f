package quotes

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
)

// Request identifies one fetch. Seq increases with every Begin call.
type Request struct {
	Seq    uint64
	Symbol string
	Range  chart.NamedRange
}

// Result is the outcome of a Request.
type Result struct {
	Seq       uint64
	Symbol    string
	Range     chart.NamedRange
	Series    *chart.Series
	Err       error
	FetchedAt time.Time
}

// Fetcher numbers requests so callers can discard results that arrive
// after a newer request was issued.
type Fetcher struct {
	mu       sync.Mutex
	seq      uint64
	provider Provider
	timeout  time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewFetcher creates a Fetcher over provider. A zero timeout disables the
// per-request deadline.
func NewFetcher(provider Provider, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{provider: provider, timeout: timeout, logger: logger, now: time.Now}
}

// Provider returns the wrapped provider.
func (f *Fetcher) Provider() Provider { return f.provider }

// Begin issues a new request, superseding every earlier one.
func (f *Fetcher) Begin(symbol string, r chart.NamedRange) Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return Request{Seq: f.seq, Symbol: NormalizeSymbol(symbol), Range: r}
}

// IsCurrent reports whether seq belongs to the most recent request.
func (f *Fetcher) IsCurrent(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return seq == f.seq
}

// Do runs req against the provider. It blocks; the TUI calls it from a
// tea.Cmd.
func (f *Fetcher) Do(ctx context.Context, req Request) Result {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	start := f.now()
	s, err := f.provider.Fetch(ctx, req.Symbol, req.Range)
	res := Result{
		Seq:       req.Seq,
		Symbol:    req.Symbol,
		Range:     req.Range,
		Series:    s,
		Err:       err,
		FetchedAt: f.now(),
	}
	if err != nil {
		f.logger.Error("fetch failed", "seq", req.Seq, "provider", f.provider.Name(), "symbol", req.Symbol, "range", req.Range.Key, "err", err)
	} else {
		f.logger.Info("fetched series", "seq", req.Seq, "provider", f.provider.Name(), "symbol", req.Symbol, "range", req.Range.Key, "samples", s.Len(), "took", res.FetchedAt.Sub(start))
	}
	return res
}

// Fetch is Begin followed by Do.
func (f *Fetcher) Fetch(ctx context.Context, symbol string, r chart.NamedRange) Result {
	return f.Do(ctx, f.Begin(symbol, r))
}
