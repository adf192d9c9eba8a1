package records

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	key    lipgloss.Style
	value  lipgloss.Style
	border lipgloss.Style
	empty  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
		cell:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1),
		key:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		border: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		empty:  lipgloss.NewStyle().Faint(true),
	}
}
