package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorSuccess = lipgloss.Color("#10B981")
	ColorFailure = lipgloss.Color("#EF4444")
	ColorWarning = lipgloss.Color("#F59E0B")
	ColorInfo    = lipgloss.Color("#3B82F6")
	ColorMuted   = lipgloss.Color("#6B7280")

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// StatusStyle colours a runner status as reported by the runners API.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "idle":
		return StyleSuccess
	case "online":
		return StyleInfo
	case "offline":
		return StyleFailure
	default:
		return StyleMuted
	}
}

// QualifyIcon marks whether a runner can take the primary label set right now.
func QualifyIcon(qualifies bool) string {
	if qualifies {
		return StyleSuccess.Render("✓")
	}
	return StyleMuted.Render("-")
}
