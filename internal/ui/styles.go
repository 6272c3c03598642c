package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)
