package cmd

import "github.com/charmbracelet/lipgloss"

// Color scheme for the CLI's plain-terminal output. Kept small and
// reused across list/status rendering rather than re-declared per
// command.
const (
	colorSuccess = "2"  // Green
	colorWarning = "3"  // Yellow
	colorError   = "1"  // Red
	colorMuted   = "8"  // Gray
	colorAccent  = "6"  // Cyan
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorError))

	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)).Bold(true)
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning)).Bold(true)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "running":
		return runningStyle
	case "failed":
		return failedStyle
	default:
		return stoppedStyle
	}
}
