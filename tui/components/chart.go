package components

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tonhe/pricescope/internal/chart"
)

// chartBlocks are block characters from empty to full. Index 0 is a space,
// index 8 the full block.
var chartBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

const (
	crosshairRune = '│'
	markerRune    = '●'
)

// ChartColors are the non-series colours of the terminal chart, as hex.
type ChartColors struct {
	Background string
	Text       string
	Crosshair  string
	LabelBG    string
}

type cell struct {
	ch     rune
	fg, bg string
}

// RenderChart rasterises f into a cols x rows block of terminal cells. The
// frame's viewport is expected to be (cols-1) x rows so that column c sits
// at x = c. The emphasis layer is drawn at full strength inside its clip
// rectangle and faded outside it; fills fade towards the background with
// depth.
func RenderChart(f chart.Frame, cols, rows int, colors ChartColors) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for c := range grid[r] {
			grid[r][c] = cell{ch: ' ', fg: colors.Text, bg: colors.Background}
		}
	}

	if f.Empty {
		if f.Placeholder != "" {
			writeText(grid[rows/2], (cols-lipgloss.Width(f.Placeholder))/2, f.Placeholder, colors.Text, colors.Background)
		}
		return flatten(grid)
	}

	series := parseColor(f.Color)
	bg := parseColor(colors.Background)
	clip := f.Emphasis.Clip

	for c := 0; c < cols; c++ {
		x := float64(c)
		y, ok := lineAt(f.Line, x)
		if !ok {
			continue
		}
		emphasised := clip == nil || (x >= clip.X && x <= clip.Right())
		depth := float64(rows) - y
		for r := 0; r < rows; r++ {
			top, bottom := float64(r), float64(r+1)
			if y >= bottom {
				continue
			}
			t := 0.0
			if depth > 0 {
				t = (bottom - y) / depth
			}
			fade := 0.15 + 0.6*t
			if !emphasised {
				fade = 0.65 + 0.25*t
			}
			col := series.BlendLab(bg, math.Min(fade, 1)).Clamped().Hex()
			ch := chartBlocks[8]
			if y > top {
				idx := int(math.Round((bottom - y) * 8))
				if idx < 1 {
					idx = 1
				}
				ch = chartBlocks[idx]
				lineFade := 0.0
				if !emphasised {
					lineFade = 0.55
				}
				col = series.BlendLab(bg, lineFade).Clamped().Hex()
			}
			grid[r][c] = cell{ch: ch, fg: col, bg: colors.Background}
		}
	}

	if f.Crosshair != nil {
		cx := clampInt(int(math.Round(f.Crosshair[0].X)), 0, cols-1)
		for r := 0; r < rows; r++ {
			overlay(&grid[r][cx], crosshairRune, colors.Crosshair)
		}
	}
	markerRow := -1
	markerCol := 0
	if f.Marker != nil {
		markerCol = clampInt(int(math.Round(f.Marker.X)), 0, cols-1)
		markerRow = clampInt(int(math.Floor(f.Marker.Y)), 0, rows-1)
		overlay(&grid[markerRow][markerCol], markerRune, f.Color)
	}
	if f.Label != nil && markerRow >= 0 {
		text := " " + f.Label.Text + " "
		if f.Label.Detail != "" {
			text += f.Label.Detail + " "
		}
		row := markerRow - 1
		if row < 0 {
			row = markerRow + 1
		}
		if row < rows {
			n := len([]rune(text))
			start := markerCol + 2
			if f.Label.Anchor == chart.AnchorEnd {
				start = markerCol - 1 - n
			}
			start = clampInt(start, 0, max(cols-n, 0))
			writeText(grid[row], start, text, colors.Text, colors.LabelBG)
		}
	}
	return flatten(grid)
}

// RenderAxis renders a right-aligned gutter with the max value on the top row
// and the min value on the bottom row.
func RenderAxis(style lipgloss.Style, top, bottom string, width, rows int) string {
	lines := make([]string, rows)
	for i := range lines {
		label := ""
		switch {
		case i == 0:
			label = top
		case i == rows-1:
			label = bottom
		}
		lines[i] = style.Render(padLeft(label, width))
	}
	return strings.Join(lines, "\n")
}

// lineAt interpolates the polyline at x. Points must be sorted by X.
func lineAt(points []chart.Point, x float64) (float64, bool) {
	switch len(points) {
	case 0:
		return 0, false
	case 1:
		if math.Abs(points[0].X-x) < 0.5 {
			return points[0].Y, true
		}
		return 0, false
	}
	i := sort.Search(len(points), func(i int) bool { return points[i].X >= x })
	if i == len(points) {
		if x-points[i-1].X < 0.5 {
			return points[i-1].Y, true
		}
		return 0, false
	}
	if i == 0 || points[i].X == x {
		return points[i].Y, true
	}
	a, b := points[i-1], points[i]
	t := (x - a.X) / (b.X - a.X)
	return a.Y + (b.Y-a.Y)*t, true
}

// overlay draws ch over a cell, keeping a full block's colour as the cell
// background so the fill stays visible around the glyph.
func overlay(c *cell, ch rune, fg string) {
	if c.ch == chartBlocks[8] {
		c.bg = c.fg
	}
	c.ch = ch
	c.fg = fg
}

func writeText(row []cell, start int, text, fg, bg string) {
	for i, ch := range []rune(text) {
		c := start + i
		if c < 0 || c >= len(row) {
			continue
		}
		row[c] = cell{ch: ch, fg: fg, bg: bg}
	}
}

// flatten renders the grid, batching runs of identically styled cells.
func flatten(grid [][]cell) string {
	lines := make([]string, len(grid))
	for r, row := range grid {
		var sb strings.Builder
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && row[j].fg == row[i].fg && row[j].bg == row[i].bg {
				run.WriteRune(row[j].ch)
				j++
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(row[i].fg)).
				Background(lipgloss.Color(row[i].bg)).
				Render(run.String()))
			i = j
		}
		lines[r] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
