// Package quotes fetches price series from market data providers and hands
// clean, ordered samples to the chart core.
package quotes

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
)

var (
	ErrNoData       = errors.New("no data")
	ErrRateLimited  = errors.New("rate limited by provider")
	ErrMissingToken = errors.New("missing API token")
)

// Provider loads the series of a symbol over a named range.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbol string, r chart.NamedRange) (*chart.Series, error)
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Clean aligns unix timestamps with nullable values and drops nulls,
// non-finite values and non-increasing timestamps. Mismatched lengths are
// truncated to the shorter slice.
func Clean(ts []int64, values []*float64) []chart.Sample {
	n := len(ts)
	if len(values) < n {
		n = len(values)
	}
	out := make([]chart.Sample, 0, n)
	var last int64
	for i := 0; i < n; i++ {
		v := values[i]
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		if len(out) > 0 && ts[i] <= last {
			continue
		}
		out = append(out, chart.Sample{Time: time.Unix(ts[i], 0).UTC(), Value: *v})
		last = ts[i]
	}
	return out
}

// CleanSamples sorts samples by time and drops non-finite values and
// duplicate timestamps, keeping the first occurrence.
func CleanSamples(samples []chart.Sample) []chart.Sample {
	sorted := make([]chart.Sample, 0, len(samples))
	for _, s := range samples {
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) || s.Time.IsZero() {
			continue
		}
		sorted = append(sorted, s)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })
	out := sorted[:0]
	for _, s := range sorted {
		if len(out) > 0 && !s.Time.After(out[len(out)-1].Time) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Window keeps the samples within r.Window of the newest sample.
func Window(samples []chart.Sample, r chart.NamedRange) []chart.Sample {
	if len(samples) == 0 || r.Window <= 0 {
		return samples
	}
	cutoff := samples[len(samples)-1].Time.Add(-r.Window)
	i := sort.Search(len(samples), func(i int) bool { return !samples[i].Time.Before(cutoff) })
	return samples[i:]
}

// previewBody shortens a response body for error messages.
func previewBody(body []byte) string {
	const max = 120
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}

// defaultClient is shared by providers that are not given one.
var defaultClient = &http.Client{Timeout: 20 * time.Second}
