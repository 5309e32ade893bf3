package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/runner-select/internal/api"
	"github.com/altinukshini/runner-select/internal/ui"
)

// rateColor goes amber then red as the API budget runs down.
func rateColor(rl api.RateLimit) lipgloss.Color {
	switch {
	case rl.Remaining < 100:
		return ui.ColorFailure
	case rl.Remaining < 500:
		return ui.ColorWarning
	default:
		return ui.ColorSuccess
	}
}

func RenderHeader(repo string, primary []string, rl api.RateLimit, width int) string {
	title := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(fmt.Sprintf(" runner-select | %s", repo))
	labels := ui.StyleMuted.Render("  primary: " + strings.Join(primary, ","))
	left := title + labels

	rate := ""
	if rl.Limit > 0 {
		rate = lipgloss.NewStyle().Foreground(rateColor(rl)).
			Render(fmt.Sprintf("API: %d/%d ", rl.Remaining, rl.Limit))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(rate)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + rate)
}
