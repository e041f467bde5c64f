package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/internal/watchlist"
	"github.com/tonhe/pricescope/tui/components"
	"github.com/tonhe/pricescope/tui/keys"
	"github.com/tonhe/pricescope/tui/styles"
)

// SwitcherAction describes what the app should do after a switcher key press.
type SwitcherAction int

const (
	// ActionNone means no action needed.
	ActionNone SwitcherAction = iota
	// ActionClose means the user wants to dismiss the switcher.
	ActionClose
	// ActionSwitch means the user picked a symbol to chart.
	ActionSwitch
)

const sparkWidth = 16

// SwitcherView is a modal overlay listing the watchlist. Symbols charted
// earlier in the session show a sparkline of their last series; "/" opens
// an input for symbols not on the list.
type SwitcherView struct {
	theme   styles.Theme
	sty     *styles.Styles
	input   textinput.Model
	typing  bool
	entries []watchlist.Entry
	recent  map[string]*chart.Series
	current string
	cursor  int
	width   int
	height  int
}

// NewSwitcherView creates a new SwitcherView with the given theme.
func NewSwitcherView(theme styles.Theme) SwitcherView {
	input := textinput.New()
	input.Placeholder = "symbol, e.g. NVDA"
	input.CharLimit = 24
	input.Prompt = "/ "
	return SwitcherView{
		theme: theme,
		sty:   styles.NewStyles(theme),
		input: input,
	}
}

// SetTheme restyles the view.
func (v *SwitcherView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// Refresh loads the entries and places the cursor on current.
func (v *SwitcherView) Refresh(wl *watchlist.Watchlist, recent map[string]*chart.Series, current string) {
	v.entries = nil
	if wl != nil {
		v.entries = append(v.entries, wl.Symbols...)
	}
	v.recent = recent
	v.current = current
	v.cursor = 0
	v.typing = false
	v.input.Reset()
	v.input.Blur()
	for i, e := range v.entries {
		if e.Symbol == current {
			v.cursor = i
		}
	}
}

// SetSize updates the available dimensions for the overlay.
func (v *SwitcherView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the typed symbol while the input is open, otherwise the
// highlighted entry.
func (v SwitcherView) Selected() (watchlist.Entry, bool) {
	if v.typing {
		sym := strings.ToUpper(strings.TrimSpace(v.input.Value()))
		return watchlist.Entry{Symbol: sym}, sym != ""
	}
	if len(v.entries) == 0 {
		return watchlist.Entry{}, false
	}
	return v.entries[v.cursor], true
}

// Update handles key messages for the switcher overlay.
func (v SwitcherView) Update(msg tea.Msg) (SwitcherView, tea.Cmd, SwitcherAction) {
	if v.typing {
		return v.updateInput(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Symbol):
			v.typing = true
			return v, v.input.Focus(), ActionNone

		case key.Matches(msg, keys.DefaultKeyMap.Escape), key.Matches(msg, keys.DefaultKeyMap.Watchlist):
			return v, nil, ActionClose

		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if v.cursor > 0 {
				v.cursor--
			}

		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if v.cursor < len(v.entries)-1 {
				v.cursor++
			}

		case key.Matches(msg, keys.DefaultKeyMap.Enter):
			if len(v.entries) > 0 {
				return v, nil, ActionSwitch
			}
		}
	}
	return v, nil, ActionNone
}

func (v SwitcherView) updateInput(msg tea.Msg) (SwitcherView, tea.Cmd, SwitcherAction) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Escape):
			v.typing = false
			v.input.Reset()
			v.input.Blur()
			return v, nil, ActionNone
		case key.Matches(msg, keys.DefaultKeyMap.Enter):
			if _, ok := v.Selected(); ok {
				return v, nil, ActionSwitch
			}
			return v, nil, ActionNone
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd, ActionNone
}

// View renders the switcher as a centered modal box.
func (v SwitcherView) View() string {
	modalWidth := 44
	if v.width > 60 {
		modalWidth = min(v.width/2, 64)
	}
	innerWidth := modalWidth - 6

	var lines []string
	if len(v.entries) == 0 {
		lines = append(lines, v.sty.Dim.Render("Watchlist is empty."))
		lines = append(lines, v.sty.Dim.Render("Add [[symbols]] to watchlist.toml."))
	}
	for i, e := range v.entries {
		lines = append(lines, v.renderEntry(e, i == v.cursor, innerWidth))
	}

	keyStyle := lipgloss.NewStyle().Foreground(v.theme.Base0D).Bold(true)
	help := fmt.Sprintf("%s:chart  %s:move  %s:symbol  %s:close",
		keyStyle.Render("enter"), keyStyle.Render("↑/↓"), keyStyle.Render("/"), keyStyle.Render("esc"))

	input := v.sty.Dim.Render("/ type a symbol")
	if v.typing {
		input = v.input.View()
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(lines, "\n"),
		"",
		input,
		"",
		v.sty.Dim.Render(help),
	)
	return modal(v.sty, v.theme, " Watchlist ", content, innerWidth, v.width, v.height)
}

func (v SwitcherView) renderEntry(e watchlist.Entry, selected bool, width int) string {
	cursor := "  "
	style := v.sty.ListRow
	if selected {
		cursor = "> "
		style = v.sty.ListRowSel
	}
	name := e.Symbol
	if e.Label != "" {
		name += "  " + e.Label
	}
	if e.Symbol == v.current {
		name += " *"
	}

	spark := ""
	if s, ok := v.recent[e.Symbol]; ok && !s.Empty() {
		trend := v.sty.Positive
		if !s.IsIncreasing() {
			trend = v.sty.Negative
		}
		spark = trend.Render(components.Sparkline(s.Values(), sparkWidth))
	}

	nameWidth := width - len(cursor) - sparkWidth - 1
	name = truncate(name, max(nameWidth, 4))
	pad := max(width-len(cursor)-lipgloss.Width(name)-lipgloss.Width(spark), 1)
	return lipgloss.NewStyle().Foreground(v.theme.Base0D).Render(cursor) +
		style.Render(name) + strings.Repeat(" ", pad) + spark
}

// modal draws content in a rounded box with title set into the top border,
// centered in a width x height area.
func modal(sty *styles.Styles, theme styles.Theme, title, content string, innerWidth, width, height int) string {
	body := sty.ModalBorder.BorderTop(false).Width(innerWidth).Render(content)
	borderFg := lipgloss.NewStyle().Foreground(theme.Base0D).Background(theme.Base00)
	full := lipgloss.Width(body)
	dashes := max(full-3-lipgloss.Width(title), 0)
	top := borderFg.Render("╭─") + sty.ModalTitle.Render(title) + borderFg.Render(strings.Repeat("─", dashes)+"╮")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, top+"\n"+body)
}
