package terminal

import "github.com/charmbracelet/lipgloss"

// Centralized style definitions for the TUI.
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	statusStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray

	// Board cells.
	cellStyle      = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	cursorStyle    = cellStyle.BorderForeground(lipgloss.Color("4"))                // blue
	winningStyle   = cellStyle.BorderForeground(lipgloss.Color("2"))                // green
	markXStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")) // red
	markOStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")) // blue
	cellIndexStyle = dimStyle

	// Setup form.
	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusedStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4"))
	blurredStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
)
