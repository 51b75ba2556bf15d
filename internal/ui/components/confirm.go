package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/ui/theme"
)

// Confirm renders a yes/no question box.
func Confirm(question, detail string, width int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(question)
	if detail != "" {
		body += "\n\n" + theme.Hint.Render(detail)
	}
	body += "\n\n" + theme.ButtonActive.Render("Y  Yes") + "   " + theme.ButtonInactive.Render("N  No")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Width(min(width, 60)).
		Align(lipgloss.Center).
		Render(body)
}
