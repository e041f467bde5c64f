package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/tui/styles"
)

var testColors = ChartColors{Background: "#002b36", Text: "#93a1a1", Crosshair: "#839496", LabelBG: "#073642"}

func testSeries(values ...float64) *chart.Series {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]chart.Sample, len(values))
	for i, v := range values {
		samples[i] = chart.Sample{Time: start.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return chart.NewSeries(samples)
}

// frameAt composes a frame for a cols x rows terminal area, hovering at
// column hover when it is non-negative.
func frameAt(s *chart.Series, cols, rows, hover int) chart.Frame {
	vp := chart.Viewport{Width: float64(cols - 1), Height: float64(rows)}
	sc, _ := chart.BuildScales(s, vp)
	m := chart.NewMachine(s, sc)
	st := m.Initial()
	if hover >= 0 {
		st = m.Apply(st, chart.PointerMove{X: float64(hover), Y: 0, Width: vp.Width})
	}
	return chart.Compose(s, vp, st, chart.FrameOptions{})
}

func TestRenderChartShape(t *testing.T) {
	out := RenderChart(frameAt(testSeries(1, 2, 3, 4, 5), 11, 5, -1), 11, 5, testColors)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(stripANSI(l))); n != 11 {
			t.Errorf("row %d: expected 11 columns, got %d", i, n)
		}
	}
	bottom := []rune(stripANSI(lines[4]))
	if bottom[10] != '█' {
		t.Errorf("expected full block under the highest point, got %q", bottom[10])
	}
	top := []rune(stripANSI(lines[0]))
	if top[0] != ' ' {
		t.Errorf("expected empty cell above the lowest point, got %q", top[0])
	}
	if strings.ContainsRune(out, crosshairRune) || strings.ContainsRune(out, markerRune) {
		t.Error("resting chart should not draw crosshair or marker")
	}
}

func TestRenderChartHover(t *testing.T) {
	out := stripANSI(RenderChart(frameAt(testSeries(1, 2, 3, 4, 5), 21, 8, 5), 21, 8, testColors))
	if !strings.ContainsRune(out, crosshairRune) {
		t.Error("expected crosshair while hovering")
	}
	if !strings.ContainsRune(out, markerRune) {
		t.Error("expected marker while hovering")
	}
	if !strings.Contains(out, "2.00") {
		t.Errorf("expected label with highlighted value, got:\n%s", out)
	}
}

func TestRenderChartPlaceholder(t *testing.T) {
	f := chart.Compose(chart.NewSeries(nil), chart.Viewport{Width: 19, Height: 5}, chart.State{}, chart.FrameOptions{})
	out := stripANSI(RenderChart(f, 20, 5, testColors))
	if !strings.Contains(out, chart.NoDataText) {
		t.Errorf("expected placeholder, got:\n%s", out)
	}
}

func TestLineAt(t *testing.T) {
	pts := []chart.Point{{X: 0, Y: 10}, {X: 10, Y: 0}}
	if y, ok := lineAt(pts, 5); !ok || y != 5 {
		t.Errorf("expected 5, got %v %v", y, ok)
	}
	if _, ok := lineAt(pts, 11); ok {
		t.Error("expected no value past the last point")
	}
	if y, ok := lineAt([]chart.Point{{X: 0, Y: 3}}, 0); !ok || y != 3 {
		t.Errorf("expected single point at x=0, got %v %v", y, ok)
	}
}

func TestRenderAxis(t *testing.T) {
	out := stripANSI(RenderAxis(styles.NewStyles(styles.DefaultTheme).Axis, "15.00", "9.00", 7, 3))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 || lines[0] != "  15.00" || lines[2] != "   9.00" {
		t.Errorf("unexpected axis %q", lines)
	}
}

func TestRenderAxisMultiByteLabel(t *testing.T) {
	out := stripANSI(RenderAxis(styles.NewStyles(styles.DefaultTheme).Axis, "€1.234,56", "€9,00", 12, 2))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || lines[0] != "   €1.234,56" || lines[1] != "       €9,00" {
		t.Errorf("unexpected axis %q", lines)
	}
}

func TestRenderHeader(t *testing.T) {
	out := stripANSI(RenderHeader(styles.DefaultTheme, HeaderInfo{
		Symbol: "AAPL", Last: "$182.00", Change: decimal.RequireFromString("-1.5"), Loaded: true,
	}, 80))
	for _, want := range []string{"pricescope", "AAPL", "$182.00", "-1.50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q: %q", want, out)
		}
	}
}

func TestRenderStatusBar(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := stripANSI(RenderStatusBar(styles.DefaultTheme, StatusInfo{
		Provider: "yahoo", Range: "1M", Samples: 1500,
		FetchedAt: now.Add(-3 * time.Minute), Now: now,
		Err: errors.New("rate limited"),
	}, "q:quit", 120))
	for _, want := range []string{"yahoo", "1,500 samples", "3 minutes ago", "error: rate limited", "q:quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q: %q", want, out)
		}
	}
}

func TestRenderRangeBar(t *testing.T) {
	out := stripANSI(RenderRangeBar(styles.DefaultTheme, nil, "", chart.Ranges(), "1m", 80))
	for _, want := range []string{"1 1D", "3 1M", "6 5Y"} {
		if !strings.Contains(out, want) {
			t.Errorf("range bar missing %q: %q", want, out)
		}
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var sb strings.Builder
	in := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			in = true
		case in && r == 'm':
			in = false
		case !in:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
