// Package server exposes reveal charts and series over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/internal/quotes"
	"github.com/tonhe/pricescope/internal/render"
)

const (
	defaultWidth  = 800
	defaultHeight = 300
	minSize       = 40
	maxSize       = 4000
)

// Options configures a Server.
type Options struct {
	Symbol   string
	Range    string
	Currency string
	Palette  chart.Palette
	Theme    render.Theme
}

// Server renders charts of series loaded through a quotes.Provider. The
// selected range travels in the query string, so a URL reproduces its view.
type Server struct {
	provider quotes.Provider
	log      *slog.Logger
	opts     Options
}

// New creates a Server. Empty option fields take package defaults.
func New(provider quotes.Provider, log *slog.Logger, opts Options) *Server {
	if log == nil {
		log = slog.Default()
	}
	if opts.Range == "" {
		opts.Range = chart.DefaultRangeKey
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.Palette == (chart.Palette{}) {
		opts.Palette = chart.DefaultPalette
	}
	if opts.Theme == (render.Theme{}) {
		opts.Theme = render.DefaultTheme
	}
	return &Server{provider: provider, log: log, opts: opts}
}

// RegisterRoutes adds the server's routes to mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /chart.svg", s.handleChart(render.FormatSVG))
	mux.HandleFunc("GET /chart.png", s.handleChart(render.FormatPNG))
	mux.HandleFunc("GET /series.json", s.handleSeries)
	mux.HandleFunc("GET /ranges.json", s.handleRanges)
}

// Handler returns an http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return logRequests(s.log, mux)
}

func logRequests(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery, "took", time.Since(start))
	})
}

// SampleJSON is one sample in a series.json response.
type SampleJSON struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// SeriesJSON is the series.json response body.
type SeriesJSON struct {
	Symbol  string       `json:"symbol"`
	Range   string       `json:"range"`
	First   float64      `json:"first"`
	Last    float64      `json:"last"`
	Min     float64      `json:"min"`
	Max     float64      `json:"max"`
	Change  string       `json:"change"`
	Samples []SampleJSON `json:"samples"`
}

// RangeJSON describes a named range in ranges.json.
type RangeJSON struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Seconds int64  `json:"seconds"`
}

// load resolves symbol and range from the query and fetches the series.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (string, chart.NamedRange, *chart.Series, bool) {
	q := r.URL.Query()
	symbol := quotes.NormalizeSymbol(q.Get("symbol"))
	if symbol == "" {
		symbol = quotes.NormalizeSymbol(s.opts.Symbol)
	}
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "missing symbol")
		return "", chart.NamedRange{}, nil, false
	}
	key := q.Get("range")
	if key == "" {
		key = s.opts.Range
	}
	rng, err := chart.LookupRange(key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", chart.NamedRange{}, nil, false
	}
	series, err := s.provider.Fetch(r.Context(), symbol, rng)
	if err != nil {
		s.log.Error("fetch failed", "symbol", symbol, "range", rng.Key, "err", err)
		writeError(w, statusFor(err), err.Error())
		return "", chart.NamedRange{}, nil, false
	}
	return symbol, rng, series, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, quotes.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, quotes.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleChart(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		width, err := dimension(q.Get("w"), defaultWidth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "w: "+err.Error())
			return
		}
		height, err := dimension(q.Get("h"), defaultHeight)
		if err != nil {
			writeError(w, http.StatusBadRequest, "h: "+err.Error())
			return
		}
		var hoverX *float64
		if raw := q.Get("x"); raw != "" {
			x, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
				writeError(w, http.StatusBadRequest, "x: invalid number")
				return
			}
			hoverX = &x
		}

		_, rng, series, ok := s.load(w, r)
		if !ok {
			return
		}
		currency := s.opts.Currency
		if c := q.Get("currency"); c != "" {
			currency = c
		}
		vp := chart.Viewport{Width: float64(width), Height: float64(height)}
		f := render.Snapshot(series, vp, hoverX, chart.FrameOptions{
			Palette:     s.opts.Palette,
			FormatValue: chart.MoneyFormatter(currency),
			FormatTime:  chart.TimeFormatter(rng, time.UTC),
		})

		var buf bytes.Buffer
		if err := render.Write(&buf, format, f, s.opts.Theme); err != nil {
			s.log.Error("render failed", "format", format, "err", err)
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}
		contentType := "image/svg+xml"
		if format == render.FormatPNG {
			contentType = "image/png"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		w.Write(buf.Bytes())
	}
}

// dimension parses a pixel size, falling back to def when raw is empty.
func dimension(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid number")
	}
	if n < minSize || n > maxSize {
		return 0, errors.New("out of range " + strconv.Itoa(minSize) + "-" + strconv.Itoa(maxSize))
	}
	return n, nil
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	symbol, rng, series, ok := s.load(w, r)
	if !ok {
		return
	}
	resp := SeriesJSON{Symbol: symbol, Range: rng.Key, Samples: []SampleJSON{}}
	if !series.Empty() {
		resp.First = series.First().Value
		resp.Last = series.Last().Value
		resp.Min = series.Min()
		resp.Max = series.Max()
		resp.Change = chart.FormatChange(series.Change())
	}
	for _, smp := range series.Samples() {
		resp.Samples = append(resp.Samples, SampleJSON{Time: smp.Time, Value: smp.Value})
	}
	writeJSON(w, resp)
}

func (s *Server) handleRanges(w http.ResponseWriter, r *http.Request) {
	out := make([]RangeJSON, 0, len(chart.Ranges()))
	for _, rng := range chart.Ranges() {
		out = append(out, RangeJSON{Key: rng.Key, Label: rng.Label, Seconds: int64(rng.Window / time.Second)})
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
