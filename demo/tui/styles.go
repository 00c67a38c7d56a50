package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary = "#3B82F6"
	colorHuman   = "#10B981"
	colorAI      = "#EF4444"
	colorWarn    = "#F59E0B"
	colorInfo    = "#6B7280"
	colorText    = "#F9FAFB"
	colorBorder  = "#1D4ED8"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginTop(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorAI))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo))

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorText)).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1)

	// Verdict badges
	HumanStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHuman))

	AIStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAI))

	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorWarn))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(1, 2)
)
