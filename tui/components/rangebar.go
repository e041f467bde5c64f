package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/tui/styles"
)

// RangeZoneID returns the bubblezone id of the tab for key.
func RangeZoneID(prefix, key string) string {
	return prefix + "range-" + key
}

// RenderRangeBar renders one clickable tab per named range, highlighting
// current. Tabs are marked with zm when it is non-nil.
func RenderRangeBar(theme styles.Theme, zm *zone.Manager, prefix string, ranges []chart.NamedRange, current string, width int) string {
	sty := styles.NewStyles(theme)
	tabs := make([]string, 0, len(ranges))
	for i, r := range ranges {
		label := string(rune('1'+i)) + " " + r.Label
		style := sty.Tab
		if r.Key == current {
			style = sty.TabActive
		}
		tab := style.Render(label)
		if zm != nil {
			tab = zm.Mark(RangeZoneID(prefix, r.Key), tab)
		}
		tabs = append(tabs, tab)
	}
	gap := lipgloss.NewStyle().Background(theme.Base00).Render(" ")
	bar := gap + strings.Join(tabs, gap)
	return lipgloss.NewStyle().Background(theme.Base00).Width(width).MaxWidth(width).Render(bar)
}
