package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/whiteboard/pkg/task"
)

// Theme centralizes Lip Gloss styles for the board.
type Theme struct {
	Header HeaderTheme
	Row    RowTheme
	Card   CardTheme
	Footer FooterTheme

	// Status colours column headers and cards by status. Statuses without
	// an entry use Card.Text.
	Status map[string]lipgloss.Style
}

// HeaderTheme styles breadcrumbs, the focus title and column headers.
type HeaderTheme struct {
	Crumb       lipgloss.Style
	CrumbActive lipgloss.Style
	Separator   lipgloss.Style
	Title       lipgloss.Style
	ID          lipgloss.Style
	Column      lipgloss.Style
}

// RowTheme styles the swimlane titles.
type RowTheme struct {
	Title lipgloss.Style
	Stats lipgloss.Style
	Frame lipgloss.Style
}

// CardTheme styles cards inside cells.
type CardTheme struct {
	Text     lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
}

// FooterTheme groups styles used by the status line and help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// StatusStyle returns the style for status.
func (t Theme) StatusStyle(status string) lipgloss.Style {
	if s, ok := t.Status[status]; ok {
		return s
	}
	return t.Card.Text
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Header: HeaderTheme{
			Crumb:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			CrumbActive: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Title:       lipgloss.NewStyle().Bold(true),
			ID:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Column:      lipgloss.NewStyle().Bold(true).Underline(true),
		},
		Row: RowTheme{
			Title: lipgloss.NewStyle().Bold(true),
			Stats: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Frame: lipgloss.NewStyle().PaddingLeft(2),
		},
		Card: CardTheme{
			Text:     lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Reverse(true),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Status: map[string]lipgloss.Style{
			task.StatusNew:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			task.StatusUnknown: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			task.StatusDoing:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			task.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		},
	}
}
