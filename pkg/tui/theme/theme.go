package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer  FooterTheme
	Section SectionTheme
	Feed    FeedTheme
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// SectionTheme styles section headers and their rows.
type SectionTheme struct {
	Title       lipgloss.Style
	Count       lipgloss.Style
	Placeholder lipgloss.Style
	Row         lipgloss.Style
	Selected    lipgloss.Style
	Done        lipgloss.Style
}

// FeedTheme styles the change notification feed.
type FeedTheme struct {
	Frame lipgloss.Style
	Line  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Section: SectionTheme{
			Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Underline(true),
			Count:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Row:         lipgloss.NewStyle(),
			Selected:    lipgloss.NewStyle().Reverse(true),
			Done:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true),
		},
		Feed: FeedTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("238")).
				Padding(0, 1),
			Line: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}
