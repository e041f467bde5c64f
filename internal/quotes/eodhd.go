package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
)

// EODHDTokenEnv names the environment variable holding the EODHD API key.
const EODHDTokenEnv = "EODHD_API_KEY"

type eodhdBar struct {
	Date          string   `json:"date"`
	Close         *float64 `json:"close"`
	AdjustedClose *float64 `json:"adjusted_close"`
}

type eodhdIntradayBar struct {
	Timestamp int64    `json:"timestamp"`
	Close     *float64 `json:"close"`
}

// EODHD fetches series from eodhd.com. Intraday ranges use the intraday
// endpoint; longer ranges use adjusted end-of-day closes.
type EODHD struct {
	Client  *http.Client
	BaseURL string
	Token   string
	Now     func() time.Time
}

// NewEODHD returns a provider authenticated with token.
func NewEODHD(token string) *EODHD {
	return &EODHD{
		Client:  defaultClient,
		BaseURL: "https://eodhd.com/api",
		Token:   token,
		Now:     time.Now,
	}
}

func (e *EODHD) Name() string { return "eodhd" }

// Fetch implements Provider.
func (e *EODHD) Fetch(ctx context.Context, symbol string, r chart.NamedRange) (*chart.Series, error) {
	if e.Token == "" {
		return nil, fmt.Errorf("eodhd: %w (set %s or add an \"eodhd\" credential)", ErrMissingToken, EODHDTokenEnv)
	}
	symbol = eodhdSymbol(symbol)
	now := e.Now()
	from := now.Add(-r.Window)

	var samples []chart.Sample
	var err error
	if r.Intraday() {
		samples, err = e.intraday(ctx, symbol, r, from, now)
	} else {
		samples, err = e.endOfDay(ctx, symbol, from)
	}
	if err != nil {
		return nil, fmt.Errorf("eodhd %s: %w", symbol, err)
	}
	samples = Window(CleanSamples(samples), r)
	if len(samples) == 0 {
		return nil, fmt.Errorf("eodhd %s: %w", symbol, ErrNoData)
	}
	return chart.NewSeries(samples), nil
}

// eodhdSymbol defaults bare tickers to the US exchange suffix.
func eodhdSymbol(symbol string) string {
	symbol = NormalizeSymbol(symbol)
	if !strings.Contains(symbol, ".") {
		symbol += ".US"
	}
	return symbol
}

func (e *EODHD) intraday(ctx context.Context, symbol string, r chart.NamedRange, from, to time.Time) ([]chart.Sample, error) {
	interval := "5m"
	if r.Window > 24*time.Hour {
		interval = "1h"
	}
	q := url.Values{
		"interval": {interval},
		"from":     {fmt.Sprint(from.Unix())},
		"to":       {fmt.Sprint(to.Unix())},
	}
	var bars []eodhdIntradayBar
	if err := e.get(ctx, "/intraday/"+url.PathEscape(symbol), q, &bars); err != nil {
		return nil, err
	}
	samples := make([]chart.Sample, 0, len(bars))
	for _, b := range bars {
		if b.Close == nil {
			continue
		}
		samples = append(samples, chart.Sample{Time: time.Unix(b.Timestamp, 0).UTC(), Value: *b.Close})
	}
	return samples, nil
}

func (e *EODHD) endOfDay(ctx context.Context, symbol string, from time.Time) ([]chart.Sample, error) {
	q := url.Values{"from": {from.Format("2006-01-02")}}
	var bars []eodhdBar
	if err := e.get(ctx, "/eod/"+url.PathEscape(symbol), q, &bars); err != nil {
		return nil, err
	}
	samples := make([]chart.Sample, 0, len(bars))
	for _, b := range bars {
		v := b.AdjustedClose
		if v == nil {
			v = b.Close
		}
		if v == nil {
			continue
		}
		t, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			continue
		}
		samples = append(samples, chart.Sample{Time: t, Value: *v})
	}
	return samples, nil
}

func (e *EODHD) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("api_token", e.Token)
	q.Set("fmt", "json")
	u := strings.TrimRight(e.BaseURL, "/") + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	client := e.Client
	if client == nil {
		client = defaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired:
		return ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return ErrNoData
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("status %d: %s", resp.StatusCode, previewBody(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse json: %w; body: %s", err, previewBody(body))
	}
	return nil
}
