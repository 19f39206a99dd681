package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains pre-configured lipgloss styles for the search view.
type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	QueryBox lipgloss.Style
	Detail   lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		QueryBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Detail:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
