// Package render draws reveal chart frames into vector and raster formats.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tonhe/pricescope/internal/chart"
)

// Format identifies an output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Theme holds the non-series colours of a rendered chart.
type Theme struct {
	Background string
	Text       string
	Crosshair  string
}

// DefaultTheme is a dark background matching the terminal default theme.
var DefaultTheme = Theme{
	Background: "#002b36",
	Text:       "#93a1a1",
	Crosshair:  "#839496",
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported output extension %q (want .svg or .png)", filepath.Ext(path))
}

// Write draws f in the requested format.
func Write(w io.Writer, format Format, f chart.Frame, theme Theme) error {
	switch format {
	case FormatSVG:
		return SVG(w, f, theme)
	case FormatPNG:
		return PNG(w, f, theme)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// pathData converts points to SVG path data; closed paths end with Z.
func pathData(points []chart.Point, closed bool) string {
	var sb strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.2f,%.2f", cmd, p.X, p.Y)
	}
	if closed && len(points) > 0 {
		sb.WriteString("Z")
	}
	return sb.String()
}

// Snapshot composes the frame of s in vp, hovered at hoverX when it is
// non-nil and at rest otherwise. The pointer sits at mid-height.
func Snapshot(s *chart.Series, vp chart.Viewport, hoverX *float64, opts chart.FrameOptions) chart.Frame {
	sc, _ := chart.BuildScales(s, vp)
	m := chart.NewMachine(s, sc)
	st := m.Initial()
	if hoverX != nil {
		st = m.Apply(st, chart.PointerMove{X: *hoverX, Y: vp.Height / 2, Width: vp.Width})
	}
	return chart.Compose(s, vp, st, opts)
}
