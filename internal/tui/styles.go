package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Face      lipgloss.Style
	FaceLabel lipgloss.Style
	User      lipgloss.Style
	Companion lipgloss.Style
	Notice    lipgloss.Style
	Error     lipgloss.Style
	Status    lipgloss.Style
	Prompt    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Face: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1),
		FaceLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		User: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),
		Companion: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")),
	}
}
