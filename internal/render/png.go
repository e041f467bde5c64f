package render

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tonhe/pricescope/internal/chart"
)

// PNG rasterises f with gg. Both layers share one vertical gradient; the
// emphasis layer is drawn inside the frame's clip rectangle.
func PNG(w io.Writer, f chart.Frame, theme Theme) error {
	width, height := px(f.Viewport.Width), px(f.Viewport.Height)
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(parseHex(theme.Background))
	dc.Clear()

	if f.Empty {
		if f.Placeholder != "" {
			dc.SetColor(parseHex(theme.Text))
			dc.DrawStringAnchored(f.Placeholder, float64(width)/2, float64(height)/2, 0.5, 0.5)
		}
		return dc.EncodePNG(w)
	}

	series := parseHex(f.Color)
	drawLayerPNG(dc, f, f.Base, series)

	clip := f.Emphasis.Clip
	dc.Push()
	dc.DrawRectangle(clip.X, clip.Y, clip.W, clip.H)
	dc.Clip()
	drawLayerPNG(dc, f, f.Emphasis, series)
	dc.ResetClip()
	dc.Pop()

	if f.Crosshair != nil {
		a, b := f.Crosshair[0], f.Crosshair[1]
		dc.SetColor(parseHex(theme.Crosshair))
		dc.SetLineWidth(1)
		dc.SetDash(4, 3)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
		dc.SetDash()
	}
	if f.Marker != nil {
		dc.SetColor(parseHex(theme.Background))
		dc.DrawCircle(f.Marker.X, f.Marker.Y, 6)
		dc.Fill()
		dc.SetColor(series)
		dc.DrawCircle(f.Marker.X, f.Marker.Y, 4)
		dc.Fill()
	}
	if f.Label != nil {
		drawLabelPNG(dc, *f.Label, theme, float64(height))
	}
	return dc.EncodePNG(w)
}

func drawLayerPNG(dc *gg.Context, f chart.Frame, layer chart.Layer, base colorful.Color) {
	grad := gg.NewLinearGradient(0, 0, 0, f.Viewport.Height)
	grad.AddColorStop(0, withAlpha(base, layer.FillOpacity))
	grad.AddColorStop(1, withAlpha(base, 0))
	tracePath(dc, f.Area)
	dc.ClosePath()
	dc.SetFillStyle(grad)
	dc.Fill()

	tracePath(dc, f.Line)
	dc.SetColor(withAlpha(base, layer.StrokeOpacity))
	dc.SetLineWidth(layer.StrokeWidth)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.Stroke()
}

func drawLabelPNG(dc *gg.Context, l chart.Label, theme Theme, height float64) {
	ax, dx := 0.0, 8.0
	if l.Anchor == chart.AnchorEnd {
		ax, dx = 1.0, -8.0
	}
	y := l.At.Y - 10
	if y < 12 {
		y = l.At.Y + 16
	}
	if y > height-4 {
		y = height - 4
	}
	dc.SetColor(parseHex(theme.Text))
	dc.DrawStringAnchored(l.Text, l.At.X+dx, y, ax, 0)
	if l.Detail != "" {
		dc.SetColor(parseHex(theme.Crosshair))
		dc.DrawStringAnchored(l.Detail, l.At.X+dx, y+14, ax, 0)
	}
}

func tracePath(dc *gg.Context, points []chart.Point) {
	dc.NewSubPath()
	for i, p := range points {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
}

// parseHex parses "#rrggbb", returning grey for malformed input.
func parseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}

func withAlpha(c colorful.Color, alpha float64) color.Color {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
