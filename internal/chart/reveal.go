package chart

// NoDataText is shown in place of the chart when the series is empty.
const NoDataText = "no data"

// Palette holds the hex colours used for the series.
type Palette struct {
	Positive string
	Negative string
	Focus    string
}

// DefaultPalette is used when the configuration does not override colours.
var DefaultPalette = Palette{
	Positive: "#22c55e",
	Negative: "#ef4444",
	Focus:    "#3b82f6",
}

// Color picks the series colour: focus while hovering, otherwise by trend.
func (p Palette) Color(s *Series, hovering bool) string {
	switch {
	case hovering:
		return p.Focus
	case s.IsIncreasing():
		return p.Positive
	default:
		return p.Negative
	}
}

// Point is a position in viewport pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in viewport pixels.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Layer describes one copy of the area and line. FillOpacity applies at the
// top of the vertical gradient, which fades to transparent at the bottom.
type Layer struct {
	FillOpacity   float64
	StrokeOpacity float64
	StrokeWidth   float64
	Clip          *Rect
}

// Anchor tells a backend which side of the label sits on the anchor point.
type Anchor int

const (
	// AnchorStart draws the label to the right of its point.
	AnchorStart Anchor = iota
	// AnchorEnd draws the label to the left of its point.
	AnchorEnd
)

// Label is the floating value label.
type Label struct {
	Text   string
	Detail string
	At     Point
	Anchor Anchor
}

// Frame is everything a backend needs to draw one chart state. It is pure
// geometry; SVG, PNG and terminal backends consume the same frame.
type Frame struct {
	Viewport    Viewport
	Empty       bool
	Placeholder string

	Color    string
	Line     []Point
	Area     []Point
	Base     Layer
	Emphasis Layer

	Crosshair *[2]Point
	Marker    *Point
	Label     *Label

	Highlighted Sample
	Hovering    bool
}

// FrameOptions configure Compose.
type FrameOptions struct {
	Palette     Palette
	FormatValue func(float64) string
	FormatTime  func(Sample) string
}

// Layer opacities. Cosmetic; the base copy stays visible under the sweep.
var (
	baseLayer     = Layer{FillOpacity: 0.12, StrokeOpacity: 0.35, StrokeWidth: 1.5}
	emphasisLayer = Layer{FillOpacity: 0.4, StrokeOpacity: 1, StrokeWidth: 2}
)

// Compose lays out the reveal chart for s in vp at interaction state st.
// An empty series yields a placeholder frame without building scales.
func Compose(s *Series, vp Viewport, st State, opts FrameOptions) Frame {
	f := Frame{Viewport: vp, Highlighted: st.Highlighted, Hovering: st.Hovering}
	if s.Empty() {
		f.Empty = true
		f.Placeholder = NoDataText
		return f
	}
	if !vp.Drawable() {
		f.Empty = true
		return f
	}
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultPalette
	}
	sc, err := BuildScales(s, vp)
	if err != nil {
		f.Empty = true
		f.Placeholder = NoDataText
		return f
	}

	f.Color = opts.Palette.Color(s, st.Hovering)
	f.Line = make([]Point, s.Len())
	for i := range f.Line {
		smp := s.At(i)
		f.Line[i] = Point{X: sc.XOf(smp), Y: sc.YOf(smp)}
	}
	f.Area = make([]Point, 0, len(f.Line)+2)
	f.Area = append(f.Area, f.Line...)
	f.Area = append(f.Area,
		Point{X: f.Line[len(f.Line)-1].X, Y: vp.Height},
		Point{X: f.Line[0].X, Y: vp.Height},
	)

	f.Base = baseLayer
	f.Emphasis = emphasisLayer
	f.Emphasis.Clip = &Rect{
		X: vp.Width * st.RevealPercent / 100,
		Y: 0,
		W: vp.Width,
		H: vp.Height,
	}

	if st.Hovering && st.Pointer != nil {
		px := st.Pointer.X
		f.Crosshair = &[2]Point{{X: px, Y: 0}, {X: px, Y: vp.Height}}
		marker := Point{X: px, Y: sc.YOf(st.Highlighted)}
		f.Marker = &marker
		label := &Label{
			Text:   formatValue(opts, st.Highlighted.Value),
			At:     marker,
			Anchor: AnchorStart,
		}
		if opts.FormatTime != nil {
			label.Detail = opts.FormatTime(st.Highlighted)
		}
		if px > vp.Width/2 {
			label.Anchor = AnchorEnd
		}
		f.Label = label
	}
	return f
}

func formatValue(opts FrameOptions, v float64) string {
	if opts.FormatValue != nil {
		return opts.FormatValue(v)
	}
	return PlainFormatter(v)
}
