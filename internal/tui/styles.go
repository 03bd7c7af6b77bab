package tui

import "github.com/charmbracelet/lipgloss"

// Styles used by the browser screens
type Styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style
	Favorite   lipgloss.Style
	Suggestion lipgloss.Style
	Error      lipgloss.Style
	Box        lipgloss.Style
}

// DefaultStyles returns the green-on-dark palette
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD787")),
		Header:     lipgloss.NewStyle().Bold(true).Underline(true),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2E7D32")),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
		Favorite:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFD7")).Italic(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Box:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5FD787")).Padding(0, 1),
	}
}
