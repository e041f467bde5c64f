package views

import (
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/internal/watchlist"
	"github.com/tonhe/pricescope/tui/styles"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansi.ReplaceAllString(s, "") }

func testSeries(values ...float64) *chart.Series {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]chart.Sample, len(values))
	for i, v := range values {
		samples[i] = chart.Sample{Time: start.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return chart.NewSeries(samples)
}

func TestSwitcherNavigation(t *testing.T) {
	v := NewSwitcherView(styles.DefaultTheme)
	v.SetSize(80, 20)
	v.Refresh(watchlist.Default(), nil, "SPY")

	if e, ok := v.Selected(); !ok || e.Symbol != "SPY" {
		t.Fatalf("cursor should start on the current symbol, got %+v", e)
	}
	v, _, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	v, _, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	v, _, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	if e, _ := v.Selected(); e.Symbol != "AAPL" {
		t.Errorf("cursor should stop at the top, got %s", e.Symbol)
	}
	_, _, action := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if action != ActionSwitch {
		t.Errorf("enter should switch, got %v", action)
	}
	_, _, action = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if action != ActionClose {
		t.Errorf("esc should close, got %v", action)
	}
}

func TestSwitcherTypedSymbol(t *testing.T) {
	v := NewSwitcherView(styles.DefaultTheme)
	v.SetSize(80, 20)
	v.Refresh(&watchlist.Watchlist{}, nil, "")

	if _, _, action := v.Update(tea.KeyMsg{Type: tea.KeyEnter}); action != ActionNone {
		t.Error("enter on an empty list should do nothing")
	}
	v, _, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	v, _, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" tsla")})
	e, ok := v.Selected()
	if !ok || e.Symbol != "TSLA" {
		t.Fatalf("expected typed TSLA, got %+v", e)
	}
	v, _, _ = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := v.Selected(); ok {
		t.Error("esc should cancel typing")
	}
}

func TestSwitcherViewShowsSparkline(t *testing.T) {
	v := NewSwitcherView(styles.DefaultTheme)
	v.SetSize(100, 20)
	v.Refresh(watchlist.Default(), map[string]*chart.Series{"MSFT": testSeries(1, 3, 2, 5)}, "MSFT")
	out := stripANSI(v.View())
	if !strings.Contains(out, "Microsoft *") {
		t.Error("current symbol should be marked")
	}
	if !strings.ContainsAny(out, "▁█") {
		t.Error("expected a sparkline for a recently charted symbol")
	}
}

func TestHelpToggle(t *testing.T) {
	v := NewHelpView(styles.DefaultTheme)
	v.SetSize(90, 30)
	if v.IsVisible() {
		t.Fatal("help starts hidden")
	}
	v.Toggle()
	if !v.IsVisible() {
		t.Fatal("toggle should show help")
	}
	if out := stripANSI(v.View()); !strings.Contains(out, "watchlist") {
		t.Error("help should list the range keys")
	}
	v.Toggle()
	if v.IsVisible() {
		t.Error("second toggle should hide help")
	}
}

func TestChartViewPointer(t *testing.T) {
	v := NewChartView(styles.DefaultTheme, nil, chart.DefaultPalette)
	v.SetSize(axisWidth+21, 8)
	v.SetSeries(testSeries(1, 2, 3), chart.Ranges()[0], "USD")

	if vp := v.Viewport(); vp.Width != 20 || vp.Height != 8 {
		t.Fatalf("unexpected viewport %+v", vp)
	}
	v.PointerAt(99, 1)
	st := v.State()
	if !st.Hovering || st.Highlighted.Value != 3 || st.RevealPercent != 0 {
		t.Errorf("pointer past the edge should clamp to the last sample, got %+v", st)
	}
	v.Leave()
	if v.State().Hovering {
		t.Error("leave should end hovering")
	}

	v.PointerAt(0, 1)
	v.SetSize(axisWidth+41, 8)
	if v.State().Hovering {
		t.Error("resize should reset the interaction state")
	}
	if !strings.Contains(v.View(), "$3.00") {
		t.Error("axis should show the max value")
	}
}

func TestChartViewHandleMouseWithoutZones(t *testing.T) {
	v := NewChartView(styles.DefaultTheme, nil, chart.DefaultPalette)
	if v.HandleMouse(tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionMotion}) {
		t.Error("without a zone manager no event is inside")
	}
}
