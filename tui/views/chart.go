package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/tui/components"
	"github.com/tonhe/pricescope/tui/styles"
)

// axisWidth is the value gutter left of the plot.
const axisWidth = 12

// ChartView hosts the reveal chart in the terminal. It measures the plot
// area, rebuilds scales on every series or size change and feeds pointer
// events through the interaction reducer.
type ChartView struct {
	theme   styles.Theme
	sty     *styles.Styles
	palette chart.Palette
	zones   *zone.Manager
	zoneID  string

	series  *chart.Series
	rng     chart.NamedRange
	opts    chart.FrameOptions
	machine chart.Machine
	state   chart.State

	cols, rows int
}

// NewChartView creates a ChartView. zm may be nil, which disables mouse
// hit-testing.
func NewChartView(theme styles.Theme, zm *zone.Manager, palette chart.Palette) ChartView {
	v := ChartView{
		theme:   theme,
		sty:     styles.NewStyles(theme),
		palette: palette,
		zones:   zm,
		opts:    chart.FrameOptions{Palette: palette},
	}
	if zm != nil {
		v.zoneID = zm.NewPrefix() + "chart"
	}
	v.rebuild()
	return v
}

// SetTheme restyles the view.
func (v *ChartView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// SetSize sets the terminal area available to the chart, gutter included.
func (v *ChartView) SetSize(width, height int) {
	v.cols = max(width-axisWidth, 1)
	v.rows = max(height, 1)
	v.rebuild()
}

// SetSeries replaces the series. Interaction state returns to rest.
func (v *ChartView) SetSeries(s *chart.Series, r chart.NamedRange, currency string) {
	v.series = s
	v.rng = r
	v.opts = chart.FrameOptions{
		Palette:     v.palette,
		FormatValue: chart.MoneyFormatter(currency),
		FormatTime:  chart.TimeFormatter(r, time.Local),
	}
	v.rebuild()
}

func (v *ChartView) rebuild() {
	sc, _ := chart.BuildScales(v.series, v.Viewport())
	v.machine = chart.NewMachine(v.series, sc)
	v.state = v.machine.Initial()
}

// Viewport is the plot area in cells; column c maps to x = c.
func (v ChartView) Viewport() chart.Viewport {
	return chart.Viewport{Width: float64(v.cols - 1), Height: float64(v.rows)}
}

// Series returns the displayed series.
func (v ChartView) Series() *chart.Series { return v.series }

// State returns the current interaction state.
func (v ChartView) State() chart.State { return v.state }

// ZoneID returns the bubblezone id of the plot area.
func (v ChartView) ZoneID() string { return v.zoneID }

// Dispatch applies ev to the interaction state.
func (v *ChartView) Dispatch(ev chart.Event) {
	v.state = v.machine.Apply(v.state, ev)
}

// PointerAt moves the pointer to a plot-relative cell.
func (v *ChartView) PointerAt(col, row int) {
	vp := v.Viewport()
	x := float64(col)
	if x < 0 {
		x = 0
	}
	if x > vp.Width {
		x = vp.Width
	}
	v.Dispatch(chart.PointerMove{X: x, Y: float64(row), Width: vp.Width})
}

// Leave ends hovering.
func (v *ChartView) Leave() {
	v.Dispatch(chart.PointerLeave{})
}

// HandleMouse turns a mouse event into PointerMove while it is inside the
// plot zone and PointerLeave otherwise. It reports whether the event was
// inside.
func (v *ChartView) HandleMouse(msg tea.MouseMsg) bool {
	if v.zones == nil {
		return false
	}
	info := v.zones.Get(v.zoneID)
	if info == nil || !info.InBounds(msg) {
		if v.state.Hovering {
			v.Leave()
		}
		return false
	}
	x, y := info.Pos(msg)
	v.PointerAt(x, y)
	return true
}

// Frame composes the current frame.
func (v ChartView) Frame() chart.Frame {
	return chart.Compose(v.series, v.Viewport(), v.state, v.opts)
}

// View renders the value gutter beside the plot.
func (v ChartView) View() string {
	if v.cols < 1 || v.rows < 1 {
		return ""
	}
	top, bottom := "", ""
	if !v.series.Empty() {
		format := v.opts.FormatValue
		if format == nil {
			format = chart.PlainFormatter
		}
		top = truncate(format(v.series.Max()), axisWidth-1)
		bottom = truncate(format(v.series.Min()), axisWidth-1)
	}
	axis := components.RenderAxis(v.sty.Axis, top+" ", bottom+" ", axisWidth, v.rows)

	plot := components.RenderChart(v.Frame(), v.cols, v.rows, components.ChartColors{
		Background: styles.Hex(v.theme.Base00),
		Text:       styles.Hex(v.theme.Base05),
		Crosshair:  styles.Hex(v.theme.Base04),
		LabelBG:    styles.Hex(v.theme.Base02),
	})
	if v.zones != nil {
		plot = v.zones.Mark(v.zoneID, plot)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, axis, plot)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

