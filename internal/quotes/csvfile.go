package quotes

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
)

// CSVFile reads series from <Dir>/<SYMBOL>.csv. Each row holds a
// timestamp and a value; timestamps are RFC 3339, a plain date or unix
// seconds. A header row is skipped when its value column is not numeric.
type CSVFile struct {
	Dir string
}

// NewCSVFile returns a provider reading from dir.
func NewCSVFile(dir string) *CSVFile {
	return &CSVFile{Dir: dir}
}

func (c *CSVFile) Name() string { return "csv" }

// Fetch implements Provider. The range window is applied relative to the
// newest row in the file.
func (c *CSVFile) Fetch(ctx context.Context, symbol string, r chart.NamedRange) (*chart.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)
	path := filepath.Join(c.Dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("csv %s: %w", symbol, ErrNoData)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	samples, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	samples = Window(samples, r)
	if len(samples) == 0 {
		return nil, fmt.Errorf("csv %s: %w", symbol, ErrNoData)
	}
	return chart.NewSeries(samples), nil
}

// ReadCSV parses time,value rows into cleaned samples. Rows that fail to
// parse are skipped.
func ReadCSV(r io.Reader) ([]chart.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var samples []chart.Sample
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[len(rec)-1]), 64)
		if err != nil {
			continue
		}
		t, ok := parseTimestamp(rec[0])
		if !ok {
			continue
		}
		samples = append(samples, chart.Sample{Time: t, Value: v})
	}
	return CleanSamples(samples), nil
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0).UTC(), true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
