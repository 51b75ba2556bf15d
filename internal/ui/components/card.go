package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centred panels.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Card wraps content in a rounded-border panel of width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw - 2).
		Render(content)
}

// Center places block in the middle of a width x height area.
func Center(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// Button renders a menu button.
func Button(label string, selected bool) string {
	if selected {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
