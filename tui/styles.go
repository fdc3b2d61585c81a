package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorGoal    = lipgloss.Color("#8BC34A")
	ColorPlayer  = lipgloss.Color("#FFC107")
	ColorPending = lipgloss.Color("#2196F3")
	ColorMuted   = lipgloss.Color("#6b7280")
	ColorError   = lipgloss.Color("#e53935")
	ColorBorder  = lipgloss.Color("#2a3850")
)

// Styles holds the lipgloss styles used by the view.
type Styles struct {
	Title    lipgloss.Style
	Board    lipgloss.Style
	Empty    lipgloss.Style
	Goal     lipgloss.Style
	Player   lipgloss.Style
	Pending  lipgloss.Style
	Label    lipgloss.Style
	Message  lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Victory  lipgloss.Style
	Describe lipgloss.Style
}

// DefaultStyles returns the default theme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Board: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),

		Empty:   lipgloss.NewStyle().Foreground(ColorMuted),
		Goal:    lipgloss.NewStyle().Foreground(ColorGoal),
		Player:  lipgloss.NewStyle().Foreground(ColorPlayer).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(ColorPending),

		Label: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(11),

		Message: lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),

		Victory: lipgloss.NewStyle().
			Foreground(ColorGoal).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorGoal),

		Describe: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),
	}
}
