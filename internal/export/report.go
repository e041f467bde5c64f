package export

import (
	"errors"
	"strings"

	"github.com/vicanso/go-charts/v2"

	"github.com/tonhe/pricescope/internal/chart"
)

// ErrTooFewSamples is returned when a report needs at least two samples.
var ErrTooFewSamples = errors.New("not enough data points")

// ReportOptions sizes a PNG report.
type ReportOptions struct {
	Width  int
	Height int
	Dark   bool
}

// DefaultReportOptions is the export command default.
var DefaultReportOptions = ReportOptions{Width: 800, Height: 400}

// Report renders a titled line chart with axes as PNG bytes. Unlike the
// reveal renderer it is static, meant for sharing a snapshot.
func Report(symbol string, r chart.NamedRange, s *chart.Series, opts ReportOptions) ([]byte, error) {
	if s.Len() < 2 {
		return nil, ErrTooFewSamples
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultReportOptions
	}

	values := s.Values()
	layout := r.TimeLayout()
	labels := make([]string, s.Len())
	for i, smp := range s.Samples() {
		labels[i] = smp.Time.Format(layout)
	}

	yMin, yMax := s.Min(), s.Max()
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	split := len(labels) - 1
	if split > 8 {
		split = 8
	}
	theme := charts.ThemeLight
	if opts.Dark {
		theme = charts.ThemeDark
	}
	title := strings.ToUpper(symbol) + " • " + r.Label
	subtitle := chart.FormatChange(s.Change())

	painter, err := charts.LineRender([][]float64{values},
		charts.TitleTextOptionFunc(title, subtitle),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(theme),
		charts.WidthOptionFunc(opts.Width),
		charts.HeightOptionFunc(opts.Height),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
