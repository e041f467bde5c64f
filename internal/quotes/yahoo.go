package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
)

// yahooChartResp mirrors the Yahoo v8 chart response, trimmed to the fields
// we read. Close values are pointers because Yahoo sends null for gaps.
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
				Timezone string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooParams maps each named range onto Yahoo's range and interval.
var yahooParams = map[string][2]string{
	"1d": {"1d", "5m"},
	"1w": {"5d", "15m"},
	"1m": {"1mo", "1h"},
	"3m": {"3mo", "1d"},
	"1y": {"1y", "1d"},
	"5y": {"5y", "1wk"},
}

// Yahoo fetches series from the public Yahoo Finance chart endpoint. Each
// attempt walks every host before backing off.
type Yahoo struct {
	Client    *http.Client
	Hosts     []string
	Backoffs  []time.Duration
	UserAgent string
}

// NewYahoo returns a provider using both public Yahoo query hosts.
func NewYahoo() *Yahoo {
	return &Yahoo{
		Client:    defaultClient,
		Hosts:     []string{"https://query1.finance.yahoo.com", "https://query2.finance.yahoo.com"},
		Backoffs:  []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, time.Second},
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	}
}

func (y *Yahoo) Name() string { return "yahoo" }

// Fetch implements Provider.
func (y *Yahoo) Fetch(ctx context.Context, symbol string, r chart.NamedRange) (*chart.Series, error) {
	params, ok := yahooParams[r.Key]
	if !ok {
		return nil, fmt.Errorf("yahoo: %w: %q", chart.ErrUnknownRange, r.Key)
	}
	symbol = NormalizeSymbol(symbol)

	var lastErr error
	for attempt := 0; attempt <= len(y.Backoffs); attempt++ {
		for _, host := range y.Hosts {
			resp, err := y.get(ctx, host, symbol, params[0], params[1])
			if err != nil {
				if errors.Is(err, ErrNoData) {
					return nil, err
				}
				lastErr = err
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				continue
			}
			return y.toSeries(resp)
		}
		if attempt < len(y.Backoffs) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(y.Backoffs[attempt]):
			}
		}
	}
	return nil, fmt.Errorf("yahoo %s: %w", symbol, lastErr)
}

func (y *Yahoo) get(ctx context.Context, host, symbol, rangeParam, interval string) (*yahooChartResp, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s&includePrePost=false",
		strings.TrimRight(host, "/"), url.PathEscape(symbol), rangeParam, interval)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", y.UserAgent)
	req.Header.Set("Accept", "application/json")

	client := y.Client
	if client == nil {
		client = defaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read yahoo response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests"):
		return nil, fmt.Errorf("%s: %w", host, ErrRateLimited)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: symbol %s: %w", host, symbol, ErrNoData)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s returned %d: %s", host, resp.StatusCode, previewBody(body))
	case strings.HasPrefix(string(body), "<"):
		return nil, fmt.Errorf("%s returned non-json body: %s", host, previewBody(body))
	}

	var yc yahooChartResp
	if err := json.Unmarshal(body, &yc); err != nil {
		return nil, fmt.Errorf("parse yahoo json: %w; body: %s", err, previewBody(body))
	}
	if yc.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error %s: %s", yc.Chart.Error.Code, yc.Chart.Error.Description)
	}
	return &yc, nil
}

func (y *Yahoo) toSeries(yc *yahooChartResp) (*chart.Series, error) {
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}
	res := yc.Chart.Result[0]
	samples := Clean(res.Timestamp, res.Indicators.Quote[0].Close)
	if len(samples) == 0 {
		return nil, ErrNoData
	}
	return chart.NewSeries(samples), nil
}
