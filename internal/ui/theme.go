package ui

import "github.com/charmbracelet/lipgloss"

var (
	hnOrange = lipgloss.Color("#FF6600")

	HeaderStyle = lipgloss.NewStyle().
			Background(hnOrange).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1)

	URLStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(hnOrange)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#32CD32"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
