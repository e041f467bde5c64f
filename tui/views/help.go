package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/tonhe/pricescope/tui/styles"
)

// helpMarkdown is the key reference shown by the help overlay.
const helpMarkdown = `# Keys

| Key | Action |
|-----|--------|
| ← / h | previous range |
| → / l | next range |
| 1 - 6 | pick range 1D, 1W, 1M, 3M, 1Y, 5Y |
| w | watchlist |
| t | next theme |
| r | refetch |
| ? | toggle help |
| esc | close overlay |
| q | quit |

# Mouse

Move across the chart to scrub: the line brightens up to the pointer and
the nearest sample is labelled. Leave the chart to return to the latest
value. Click a range tab to switch ranges.
`

// HelpView renders a modal overlay with the key reference.
type HelpView struct {
	theme    styles.Theme
	sty      *styles.Styles
	width    int
	height   int
	visible  bool
	rendered string
}

// NewHelpView creates a new HelpView with the given theme.
func NewHelpView(theme styles.Theme) HelpView {
	return HelpView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetTheme restyles the view.
func (v *HelpView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
	v.rendered = ""
}

// Toggle flips the help overlay visibility.
func (v *HelpView) Toggle() {
	v.visible = !v.visible
	if v.visible && v.rendered == "" {
		v.rendered = v.render()
	}
}

// IsVisible returns whether the help overlay is currently shown.
func (v HelpView) IsVisible() bool {
	return v.visible
}

// SetSize updates the available dimensions for the overlay.
func (v *HelpView) SetSize(width, height int) {
	if width != v.width {
		v.rendered = ""
	}
	v.width = width
	v.height = height
	if v.visible {
		v.rendered = v.render()
	}
}

func (v HelpView) innerWidth() int {
	return max(min(v.width-10, 64), 30)
}

// render converts the markdown once per size and theme.
func (v HelpView) render() string {
	style := "dark"
	if !v.theme.Dark() {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(v.innerWidth()),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.Trim(out, "\n")
}

// View renders the help overlay as a centered modal box.
func (v HelpView) View() string {
	content := v.rendered
	if content == "" {
		content = v.render()
	}
	content += "\n\n" + v.sty.Dim.Render("[?] close")
	return modal(v.sty, v.theme, " Help ", content, v.innerWidth(), v.width, v.height)
}
