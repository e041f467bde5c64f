package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/tonhe/pricescope/internal/chart"
)

const (
	gradientID = "series-fill"
	clipID     = "reveal-clip"
	labelFont  = "font-family:sans-serif;font-size:12px"
)

// SVG writes f as a standalone SVG document. The emphasis layer is clipped by
// a rectangle translated by the frame's reveal offset.
func SVG(w io.Writer, f chart.Frame, theme Theme) error {
	width, height := px(f.Viewport.Width), px(f.Viewport.Height)
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, attr("fill", theme.Background))

	if f.Empty {
		if f.Placeholder != "" {
			canvas.Text(width/2, height/2, f.Placeholder,
				attr("fill", theme.Text), `text-anchor="middle"`, labelFont)
		}
		canvas.End()
		return nil
	}

	canvas.Def()
	canvas.LinearGradient(gradientID, 0, 0, 0, 100, []svg.Offcolor{
		{Offset: 0, Color: f.Color, Opacity: 1},
		{Offset: 100, Color: f.Color, Opacity: 0},
	})
	clip := f.Emphasis.Clip
	canvas.ClipPath(attr("id", clipID))
	canvas.Rect(px(clip.X), px(clip.Y), px(clip.W), px(clip.H))
	canvas.ClipEnd()
	canvas.DefEnd()

	drawLayerSVG(canvas, f, f.Base, "")
	drawLayerSVG(canvas, f, f.Emphasis, fmt.Sprintf(`clip-path="url(#%s)"`, clipID))

	if f.Crosshair != nil {
		a, b := f.Crosshair[0], f.Crosshair[1]
		canvas.Line(px(a.X), px(a.Y), px(b.X), px(b.Y),
			attr("stroke", theme.Crosshair), `stroke-dasharray="4,3"`, `stroke-width="1"`)
	}
	if f.Marker != nil {
		canvas.Circle(px(f.Marker.X), px(f.Marker.Y), 4,
			attr("fill", f.Color), attr("stroke", theme.Background), `stroke-width="2"`)
	}
	if f.Label != nil {
		drawLabelSVG(canvas, *f.Label, theme)
	}
	canvas.End()
	return nil
}

func drawLayerSVG(canvas *svg.SVG, f chart.Frame, layer chart.Layer, clip string) {
	if clip != "" {
		canvas.Group(clip)
	} else {
		canvas.Group()
	}
	canvas.Path(pathData(f.Area, true),
		fmt.Sprintf(`fill="url(#%s)"`, gradientID),
		fmt.Sprintf(`fill-opacity="%.2f"`, layer.FillOpacity))
	canvas.Path(pathData(f.Line, false),
		`fill="none"`,
		attr("stroke", f.Color),
		fmt.Sprintf(`stroke-opacity="%.2f"`, layer.StrokeOpacity),
		fmt.Sprintf(`stroke-width="%.1f"`, layer.StrokeWidth),
		`stroke-linejoin="round"`)
	canvas.Gend()
}

func drawLabelSVG(canvas *svg.SVG, l chart.Label, theme Theme) {
	anchor, dx := "start", 8
	if l.Anchor == chart.AnchorEnd {
		anchor, dx = "end", -8
	}
	x, y := px(l.At.X)+dx, px(l.At.Y)-8
	if y < 12 {
		y = px(l.At.Y) + 18
	}
	canvas.Text(x, y, l.Text, attr("fill", theme.Text), attr("text-anchor", anchor), labelFont)
	if l.Detail != "" {
		canvas.Text(x, y+14, l.Detail, attr("fill", theme.Crosshair), attr("text-anchor", anchor), labelFont)
	}
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s=%q`, name, value)
}

func px(v float64) int {
	return int(math.Round(v))
}
