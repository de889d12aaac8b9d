package main

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	RoundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ActionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	StateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			PaddingLeft(2)

	ObservationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#626262")).
				PaddingLeft(4)

	WinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	LoserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Width(22)
)
