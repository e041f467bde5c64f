package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/tonhe/pricescope/internal/chart"
)

func testFrame(t *testing.T, hoverX float64) chart.Frame {
	t.Helper()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	samples := []chart.Sample{}
	for i, v := range []float64{10, 12, 9, 15, 15} {
		samples = append(samples, chart.Sample{Time: start.Add(time.Duration(i) * time.Hour), Value: v})
	}
	s := chart.NewSeries(samples)
	vp := chart.Viewport{Width: 500, Height: 200}
	sc, err := chart.BuildScales(s, vp)
	if err != nil {
		t.Fatalf("BuildScales() error: %v", err)
	}
	m := chart.NewMachine(s, sc)
	st := m.Initial()
	if hoverX >= 0 {
		st = m.Apply(st, chart.PointerMove{X: hoverX, Y: 50, Width: vp.Width})
	}
	return chart.Compose(s, vp, st, chart.FrameOptions{})
}

func TestSVGHover(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, testFrame(t, 200), DefaultTheme); err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<svg",
		`id="series-fill"`,
		`<clipPath id="reveal-clip"`,
		`clip-path="url(#reveal-clip)"`,
		`<rect x="-300" y="0" width="500" height="200"`,
		chart.DefaultPalette.Focus,
		"9.00",
		"<circle",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}

func TestSVGRestingHasNoCrosshair(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, testFrame(t, -1), DefaultTheme); err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<circle") || strings.Contains(out, "<line x1") {
		t.Error("resting frame should not draw marker or crosshair")
	}
	if !strings.Contains(out, chart.DefaultPalette.Positive) {
		t.Error("resting frame should use the trend colour")
	}
}

func TestSVGPlaceholder(t *testing.T) {
	f := chart.Compose(chart.NewSeries(nil), chart.Viewport{Width: 100, Height: 40}, chart.State{}, chart.FrameOptions{})
	var buf bytes.Buffer
	if err := SVG(&buf, f, DefaultTheme); err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if !strings.Contains(buf.String(), chart.NoDataText) {
		t.Error("expected placeholder text")
	}
	if strings.Contains(buf.String(), "<path") {
		t.Error("placeholder should not draw paths")
	}
}

func TestPNGDimensions(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, testFrame(t, 320), DefaultTheme); err != nil {
		t.Fatalf("PNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 500 || b.Dy() != 200 {
		t.Errorf("expected 500x200, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"chart.svg", FormatSVG, true},
		{"OUT.PNG", FormatPNG, true},
		{"chart.pdf", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestPathData(t *testing.T) {
	got := pathData([]chart.Point{{X: 0, Y: 1}, {X: 2.5, Y: 3}}, true)
	if got != "M0.00,1.00L2.50,3.00Z" {
		t.Errorf("unexpected path data %q", got)
	}
}

func TestSnapshot(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := chart.NewSeries([]chart.Sample{
		{Time: start, Value: 1},
		{Time: start.Add(time.Hour), Value: 2},
		{Time: start.Add(2 * time.Hour), Value: 3},
	})
	vp := chart.Viewport{Width: 300, Height: 100}

	rest := Snapshot(s, vp, nil, chart.FrameOptions{})
	if rest.Hovering || rest.Marker != nil {
		t.Error("expected resting frame")
	}
	x := 10.0
	hover := Snapshot(s, vp, &x, chart.FrameOptions{})
	if !hover.Hovering || hover.Highlighted.Value != 1 {
		t.Errorf("expected hover on first sample, got %+v", hover.Highlighted)
	}
	if empty := Snapshot(chart.NewSeries(nil), vp, &x, chart.FrameOptions{}); !empty.Empty {
		t.Error("expected placeholder frame for empty series")
	}
}
