package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Header / Footer
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderValue lipgloss.Style
	Footer      lipgloss.Style
	FooterKey   lipgloss.Style
	FooterDesc  lipgloss.Style

	// Trend
	Positive lipgloss.Style
	Negative lipgloss.Style
	Dim      lipgloss.Style
	Error    lipgloss.Style

	// Range bar
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Chart gutter
	Axis lipgloss.Style

	// Lists
	ListRow    lipgloss.Style
	ListRowSel lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base01).
			Bold(true),
		HeaderTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Background(theme.Base01).
			Bold(true),
		HeaderValue: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Background(theme.Base01),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Background(theme.Base01),
		FooterKey: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Background(theme.Base01).
			Bold(true),
		FooterDesc: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Background(theme.Base01),

		Positive: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		Negative: lipgloss.NewStyle().
			Foreground(theme.Base08),
		Dim: lipgloss.NewStyle().
			Foreground(theme.Base03),
		Error: lipgloss.NewStyle().
			Foreground(theme.Base08).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Background(theme.Base00).
			Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base0D).
			Bold(true).
			Padding(0, 1),

		Axis: lipgloss.NewStyle().
			Foreground(theme.Base03).
			Background(theme.Base00),

		ListRow: lipgloss.NewStyle().
			Foreground(theme.Base05),
		ListRowSel: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Background(theme.Base02).
			Bold(true),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
	}
}

// Hex returns the "#rrggbb" form of a theme colour.
func Hex(c lipgloss.Color) string {
	return string(c)
}
