// Package export writes a fetched series to files: CSV, an XLSX workbook and
// a static PNG report.
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
)

// ErrNothingToExport is returned for empty series.
var ErrNothingToExport = errors.New("series is empty")

// CSV writes a "time,value" header followed by one RFC 3339 row per sample.
// The output is readable by the csv provider.
func CSV(w io.Writer, s *chart.Series) error {
	if s.Empty() {
		return ErrNothingToExport
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "value"}); err != nil {
		return err
	}
	for _, smp := range s.Samples() {
		row := []string{
			smp.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(smp.Value, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
