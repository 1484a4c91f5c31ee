package tui

import "github.com/charmbracelet/lipgloss"

// Tree characters for rendering the section tree.
const (
	treeBranch = "├─"
	treeLast   = "└─"
)

// Checkbox and marker glyphs.
const (
	markEnabled  = "[x]"
	markDisabled = "[ ]"
	markOpen     = "▾"
	markClosed   = "▸"
	markFavorite = "★"
	markGrabbed  = "◆"
)

// DeckStyles defines the styles for the deck tree.
type DeckStyles struct {
	// Header styles
	SectionName    lipgloss.Style
	SubSectionName lipgloss.Style
	HeaderSelected lipgloss.Style
	Disclosure     lipgloss.Style

	// Item styles
	TreeLine     lipgloss.Style
	ItemName     lipgloss.Style
	ItemDisabled lipgloss.Style
	Favorite     lipgloss.Style

	// Count badge styles, one per fill bucket
	CountNone    lipgloss.Style
	CountPartial lipgloss.Style
	CountFull    lipgloss.Style

	// Selection and move mode
	Selected       lipgloss.Style
	SelectedBorder lipgloss.Style
	Grabbed        lipgloss.Style

	// Chrome
	Title       lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// DefaultDeckStyles returns the default tree styles.
func DefaultDeckStyles() DeckStyles {
	var (
		primary    = lipgloss.Color("#7aa2f7")
		secondary  = lipgloss.Color("#7dcfff")
		foreground = lipgloss.Color("#c0caf5")
		muted      = lipgloss.Color("#565f89")
		success    = lipgloss.Color("#9ece6a")
		warning    = lipgloss.Color("#e0af68")
		errColor   = lipgloss.Color("#f7768e")
	)

	return DeckStyles{
		SectionName:    lipgloss.NewStyle().Bold(true).Foreground(foreground),
		SubSectionName: lipgloss.NewStyle().Foreground(secondary),
		HeaderSelected: lipgloss.NewStyle().Bold(true).Foreground(primary),
		Disclosure:     lipgloss.NewStyle().Foreground(muted),

		TreeLine:     lipgloss.NewStyle().Foreground(muted),
		ItemName:     lipgloss.NewStyle().Foreground(foreground),
		ItemDisabled: lipgloss.NewStyle().Foreground(muted),
		Favorite:     lipgloss.NewStyle().Foreground(warning),

		CountNone:    lipgloss.NewStyle().Foreground(muted),
		CountPartial: lipgloss.NewStyle().Foreground(warning),
		CountFull:    lipgloss.NewStyle().Foreground(success),

		Selected:       lipgloss.NewStyle().Foreground(primary).Bold(true),
		SelectedBorder: lipgloss.NewStyle().Foreground(primary),
		Grabbed:        lipgloss.NewStyle().Foreground(warning).Bold(true),

		Title:       lipgloss.NewStyle().Bold(true).Foreground(primary),
		StatusInfo:  lipgloss.NewStyle().Foreground(secondary),
		StatusWarn:  lipgloss.NewStyle().Foreground(warning),
		StatusError: lipgloss.NewStyle().Foreground(errColor),
		Help:        lipgloss.NewStyle().Foreground(muted),
	}
}
