package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tonhe/pricescope/tui/styles"
)

// StatusInfo is what the status bar reports about fetching.
type StatusInfo struct {
	Provider  string
	Range     string
	Samples   int
	FetchedAt time.Time
	Now       time.Time
	Loading   bool
	Spinner   string
	Err       error
}

// RenderStatusBar renders the two-line footer: fetch status on top and key
// hints below.
func RenderStatusBar(theme styles.Theme, info StatusInfo, keyHints string, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")
	text := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg)

	segs := []string{
		text.Render("source: " + info.Provider),
		text.Render("range: " + info.Range),
	}
	if info.Samples > 0 {
		segs = append(segs, text.Render(humanize.Comma(int64(info.Samples))+" samples"))
	}

	fetched := "never"
	if !info.FetchedAt.IsZero() {
		now := info.Now
		if now.IsZero() {
			now = time.Now()
		}
		fetched = humanize.RelTime(info.FetchedAt, now, "ago", "from now")
	}
	segs = append(segs, text.Render("fetched "+fetched))

	switch {
	case info.Loading:
		segs = append(segs, lipgloss.NewStyle().Foreground(theme.Base0A).Background(bg).Render(info.Spinner+" loading"))
	case info.Err != nil:
		segs = append(segs, lipgloss.NewStyle().Foreground(theme.Base08).Background(bg).Bold(true).Render("error: "+info.Err.Error()))
	}

	top := bgStyle.Render(" ") + strings.Join(segs, sep)
	if w := lipgloss.Width(top); w < width {
		top += bgStyle.Render(strings.Repeat(" ", width-w))
	}
	top = lipgloss.NewStyle().MaxWidth(width).Render(top)

	hints := bgStyle.Render(" ") + keyHints
	if w := lipgloss.Width(hints); w < width {
		hints += bgStyle.Render(strings.Repeat(" ", width-w))
	}
	hints = lipgloss.NewStyle().MaxWidth(width).Render(hints)

	return lipgloss.JoinVertical(lipgloss.Left, top, hints)
}
