package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/tui/styles"
)

// HeaderInfo is what the header shows about the loaded series.
type HeaderInfo struct {
	Symbol  string
	Label   string
	Last    string
	Change  decimal.Decimal
	Loaded  bool
	Version string
}

// RenderHeader renders the top bar: app name, symbol, last value and the
// first-to-last change coloured by trend.
func RenderHeader(theme styles.Theme, info HeaderInfo, width int) string {
	bg := lipgloss.NewStyle().Background(theme.Base01)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(theme.Base01).Render("  |  ")

	app := lipgloss.NewStyle().Foreground(theme.Base0D).Background(theme.Base01).Bold(true).Render("pricescope")
	symbol := lipgloss.NewStyle().Foreground(theme.Base06).Background(theme.Base01).Bold(true).Render(info.Symbol)
	if info.Label != "" && info.Label != info.Symbol {
		symbol += lipgloss.NewStyle().Foreground(theme.Base04).Background(theme.Base01).Render(" " + info.Label)
	}

	content := bg.Render(" ") + app + sep + symbol
	if info.Loaded {
		last := lipgloss.NewStyle().Foreground(theme.Base05).Background(theme.Base01).Render(info.Last)
		changeColor := theme.Base0B
		if info.Change.IsNegative() {
			changeColor = theme.Base08
		}
		change := lipgloss.NewStyle().Foreground(changeColor).Background(theme.Base01).Render(chart.FormatChange(info.Change))
		content += sep + last + bg.Render(" ") + change
	}

	if info.Version != "" {
		ver := lipgloss.NewStyle().Foreground(theme.Base03).Background(theme.Base01).Render("v" + info.Version + " ")
		gap := width - lipgloss.Width(content) - lipgloss.Width(ver)
		if gap > 0 {
			content += bg.Render(strings.Repeat(" ", gap)) + ver
		}
	}

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		MaxWidth(width).
		Render(content)
}

