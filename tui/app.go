package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/tonhe/pricescope/internal/chart"
	"github.com/tonhe/pricescope/internal/config"
	"github.com/tonhe/pricescope/internal/quotes"
	"github.com/tonhe/pricescope/internal/watchlist"
	"github.com/tonhe/pricescope/tui/components"
	"github.com/tonhe/pricescope/tui/keys"
	"github.com/tonhe/pricescope/tui/styles"
	"github.com/tonhe/pricescope/tui/views"
)

// AppState represents the current screen/view of the application.
type AppState int

const (
	StateChart AppState = iota
	StateSwitcher
	StateHelp
)

// FetchResultMsg carries a finished fetch back to the update loop.
type FetchResultMsg struct {
	quotes.Result
}

// TickMsg refreshes the relative fetch time in the status bar.
type TickMsg struct{}

// Options configures a new AppModel.
type Options struct {
	Config        *config.Config
	ConfigPath    string
	Fetcher       *quotes.Fetcher
	State         *config.StateStore
	Watchlist     *watchlist.Watchlist
	// WatchlistPath is where symbols typed into the switcher are saved.
	WatchlistPath string
	Logger        *slog.Logger
	Symbol        string
	Range         string
	Version       string
}

// AppModel is the root Bubble Tea model. It owns the fetch lifecycle and
// hands each fresh series to the chart view as a full replacement.
type AppModel struct {
	state      AppState
	theme      styles.Theme
	config     *config.Config
	configPath string
	version    string
	logger     *slog.Logger

	fetcher   *quotes.Fetcher
	ranges    *chart.RangeSelector
	store     *config.StateStore
	watchlist *watchlist.Watchlist
	wlPath    string
	zones     *zone.Manager
	zonePfx   string

	chart    views.ChartView
	switcher views.SwitcherView
	help     views.HelpView
	hints    help.Model
	spinner  spinner.Model

	symbol    string
	shown     string
	recent    map[string]*chart.Series
	loading   bool
	lastErr   error
	fetchedAt time.Time
	now       func() time.Time

	width  int
	height int
}

// NewAppModel creates an AppModel for opts.Symbol over opts.Range.
func NewAppModel(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	theme := styles.DefaultTheme
	if t := styles.GetThemeByName(cfg.Theme); t != nil {
		theme = *t
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	wl := opts.Watchlist
	if wl == nil {
		wl = watchlist.Default()
	}
	symbol := quotes.NormalizeSymbol(opts.Symbol)
	if symbol == "" {
		symbol = quotes.NormalizeSymbol(cfg.DefaultSymbol)
	}
	rng := opts.Range
	if rng == "" {
		rng = cfg.DefaultRange
	}

	var persister chart.Persister
	if opts.State != nil {
		persister = opts.State
	}

	zm := zone.New()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Base0A).Background(theme.Base01)

	m := AppModel{
		state:      StateChart,
		theme:      theme,
		config:     cfg,
		configPath: opts.ConfigPath,
		version:    opts.Version,
		logger:     logger,
		fetcher:    opts.Fetcher,
		ranges:     chart.NewRangeSelector(rng, persister),
		store:      opts.State,
		watchlist:  wl,
		wlPath:     opts.WatchlistPath,
		zones:      zm,
		zonePfx:    zm.NewPrefix(),
		chart:      views.NewChartView(theme, zm, cfg.Palette()),
		switcher:   views.NewSwitcherView(theme),
		help:       views.NewHelpView(theme),
		hints:      help.New(),
		spinner:    sp,
		symbol:     symbol,
		recent:     make(map[string]*chart.Series),
		loading:    opts.Fetcher != nil,
		now:        time.Now,
	}
	m.styleHints()
	return m
}

// Init starts the first fetch, the spinner and the status tick.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.spinner.Tick, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// fetchCmd supersedes any pending fetch and runs a new one for the current
// symbol and range.
func (m *AppModel) fetchCmd() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	req := m.fetcher.Begin(m.symbol, m.ranges.Current())
	m.loading = true
	m.logger.Debug("fetch requested", "seq", req.Seq, "symbol", req.Symbol, "range", req.Range.Key)
	f := m.fetcher
	return func() tea.Msg {
		return FetchResultMsg{Result: f.Do(context.Background(), req)}
	}
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.hints.Width = msg.Width
		m.chart.SetSize(msg.Width, m.chartHeight())
		m.switcher.SetSize(msg.Width, m.chartHeight())
		m.help.SetSize(msg.Width, m.chartHeight())
		return m, nil

	case FetchResultMsg:
		return m.applyResult(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		return m, tickCmd()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, keys.DefaultKeyMap.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case StateSwitcher:
			return m.updateSwitcher(msg)
		case StateHelp:
			if key.Matches(msg, keys.DefaultKeyMap.Help) || key.Matches(msg, keys.DefaultKeyMap.Escape) {
				m.help.Toggle()
				m.state = StateChart
				return m, nil
			}
			if key.Matches(msg, keys.DefaultKeyMap.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateChartKeys(msg)
	}
	return m, nil
}

// applyResult installs a fetch result unless a newer request superseded it.
// A failed fetch leaves the previous series on screen.
func (m AppModel) applyResult(msg FetchResultMsg) AppModel {
	if m.fetcher != nil && !m.fetcher.IsCurrent(msg.Seq) {
		m.logger.Debug("dropped stale result", "seq", msg.Seq, "symbol", msg.Symbol, "range", msg.Range.Key)
		return m
	}
	m.loading = false
	if msg.Err != nil {
		m.lastErr = msg.Err
		return m
	}
	m.lastErr = nil
	m.fetchedAt = msg.FetchedAt
	m.shown = msg.Symbol
	m.recent[msg.Symbol] = msg.Series
	m.chart.SetSeries(msg.Series, msg.Range, m.currency())
	return m
}

func (m AppModel) updateChartKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := keys.DefaultKeyMap
	switch {
	case key.Matches(msg, km.Quit):
		return m, tea.Quit

	case key.Matches(msg, km.PrevRange):
		return m.changeRange(m.ranges.Prev())

	case key.Matches(msg, km.NextRange):
		return m.changeRange(m.ranges.Next())

	case key.Matches(msg, km.PickRange):
		i := int(msg.String()[0] - '1')
		return m.changeRange(m.ranges.SelectIndex(i))

	case key.Matches(msg, km.Watchlist):
		m.switcher.Refresh(m.watchlist, m.recent, m.symbol)
		m.state = StateSwitcher
		return m, nil

	case key.Matches(msg, km.Theme):
		m.setTheme(styles.NextTheme(m.config.Theme))
		return m, nil

	case key.Matches(msg, km.Refresh):
		cmd := m.fetchCmd()
		return m, cmd

	case key.Matches(msg, km.Help):
		m.help.Toggle()
		m.state = StateHelp
		return m, nil

	case key.Matches(msg, km.Escape):
		m.chart.Leave()
		return m, nil
	}
	return m, nil
}

// changeRange reacts to a RangeChange by refetching. A persistence failure
// is logged but does not block the fetch.
func (m AppModel) changeRange(change chart.RangeChange, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.logger.Warn("range change", "err", err)
		if change.Current.Key == "" {
			return m, nil
		}
	}
	m.logger.Info("range changed", "from", change.Previous.Key, "to", change.Current.Key, "symbol", m.symbol)
	cmd := m.fetchCmd()
	return m, cmd
}

func (m AppModel) updateSwitcher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action views.SwitcherAction
	m.switcher, cmd, action = m.switcher.Update(msg)
	switch action {
	case views.ActionClose:
		m.state = StateChart
	case views.ActionSwitch:
		m.state = StateChart
		if e, ok := m.switcher.Selected(); ok {
			m.remember(e)
			fetch := m.switchSymbol(e.Symbol)
			return m, tea.Batch(cmd, fetch)
		}
	}
	return m, cmd
}

// remember adds a typed symbol to the watchlist and saves it.
func (m *AppModel) remember(e watchlist.Entry) {
	if _, ok := m.watchlist.Find(e.Symbol); ok {
		return
	}
	if err := m.watchlist.Add(e); err != nil {
		return
	}
	if m.wlPath == "" {
		return
	}
	if err := watchlist.Save(m.watchlist, m.wlPath); err != nil {
		m.logger.Warn("save watchlist", "path", m.wlPath, "err", err)
	}
}

// switchSymbol charts symbol over the current range. The previous symbol's
// series is dropped so it is never shown under the new name.
func (m *AppModel) switchSymbol(symbol string) tea.Cmd {
	m.symbol = quotes.NormalizeSymbol(symbol)
	if m.symbol != m.shown {
		m.shown = ""
		m.fetchedAt = time.Time{}
		m.chart.SetSeries(nil, m.ranges.Current(), m.currency())
	}
	if m.store != nil {
		if err := m.store.SaveSymbol(m.symbol); err != nil {
			m.logger.Warn("save symbol", "symbol", m.symbol, "err", err)
		}
	}
	m.logger.Info("symbol changed", "symbol", m.symbol)
	return m.fetchCmd()
}

func (m AppModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != StateChart {
		return m, nil
	}
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		for _, r := range m.ranges.Ranges() {
			if z := m.zones.Get(components.RangeZoneID(m.zonePfx, r.Key)); z != nil && z.InBounds(msg) {
				return m.changeRange(m.ranges.Select(r.Key))
			}
		}
	}
	m.chart.HandleMouse(msg)
	return m, nil
}

func (m *AppModel) setTheme(slug string) {
	t := styles.GetThemeByName(slug)
	if t == nil {
		return
	}
	m.theme = *t
	m.config.Theme = slug
	m.chart.SetTheme(m.theme)
	m.switcher.SetTheme(m.theme)
	m.help.SetTheme(m.theme)
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.theme.Base0A).Background(m.theme.Base01)
	m.styleHints()
	if m.configPath != "" {
		if err := config.SaveConfig(m.config, m.configPath); err != nil {
			m.logger.Warn("save theme", "theme", slug, "err", err)
		}
	}
}

func (m *AppModel) styleHints() {
	bg := m.theme.Base01
	m.hints.Styles.ShortKey = lipgloss.NewStyle().Foreground(m.theme.Base0D).Background(bg).Bold(true)
	m.hints.Styles.ShortDesc = lipgloss.NewStyle().Foreground(m.theme.Base04).Background(bg)
	m.hints.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(m.theme.Base03).Background(bg)
}

// currency is the watchlist currency of the symbol, else the configured one.
func (m AppModel) currency() string {
	if e, ok := m.watchlist.Find(m.symbol); ok && e.Currency != "" {
		return e.Currency
	}
	return m.config.Currency
}

// chartHeight is the terminal height minus header, range bar and the two
// status lines.
func (m AppModel) chartHeight() int {
	return max(m.height-4, 1)
}

// View renders the full application UI by composing header, range bar,
// body and status bar.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := m.chart.Series()
	info := components.HeaderInfo{Symbol: m.symbol, Version: m.version}
	if e, ok := m.watchlist.Find(m.symbol); ok {
		info.Label = e.Label
	}
	if !s.Empty() && m.shown == m.symbol {
		info.Loaded = true
		info.Last = chart.MoneyFormatter(m.currency())(s.Last().Value)
		info.Change = s.Change()
	}
	header := components.RenderHeader(m.theme, info, m.width)

	rangeBar := components.RenderRangeBar(m.theme, m.zones, m.zonePfx, m.ranges.Ranges(), m.ranges.Current().Key, m.width)

	var body string
	switch m.state {
	case StateSwitcher:
		body = m.switcher.View()
	case StateHelp:
		body = m.help.View()
	default:
		body = m.chart.View()
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.chartHeight()).
		MaxHeight(m.chartHeight()).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	provider := ""
	if m.fetcher != nil {
		provider = m.fetcher.Provider().Name()
	}
	status := components.RenderStatusBar(m.theme, components.StatusInfo{
		Provider:  provider,
		Range:     m.ranges.Current().Label,
		Samples:   s.Len(),
		FetchedAt: m.fetchedAt,
		Now:       m.now(),
		Loading:   m.loading,
		Spinner:   strings.TrimSpace(m.spinner.View()),
		Err:       m.lastErr,
	}, m.hints.View(keys.DefaultKeyMap), m.width)

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, header, rangeBar, bodyStyle.Render(body), status))
}
