package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/ui/theme"
)

// OptionLetters label answer options on screen.
var OptionLetters = []string{"A", "B", "C", "D", "E", "F"}

// RenderOptions draws the answer options for a question. Before the answer
// is locked the selection is highlighted; afterwards the correct option is
// green and a wrong pick red.
func RenderOptions(v session.View, width int) string {
	var b strings.Builder
	for i, opt := range v.Question.Options {
		label := fmt.Sprint(i + 1)
		if i < len(OptionLetters) {
			label = OptionLetters[i]
		}

		state := v.OptionState(i)
		prefix := "  "
		mark := ""
		switch state {
		case session.OptionSelected:
			prefix = "▸ "
		case session.OptionCorrect:
			mark = "  ✓"
		case session.OptionWrong:
			mark = "  ✗"
		}

		line := fmt.Sprintf("%s%s)  %s%s", prefix, label, opt, mark)
		style := lipgloss.NewStyle().Width(width)
		switch state {
		case session.OptionSelected:
			style = style.Foreground(theme.Primary).Bold(true)
		case session.OptionCorrect:
			style = style.Foreground(theme.Success).Bold(true)
		case session.OptionWrong:
			style = style.Foreground(theme.Error).Bold(true)
		default:
			if v.Locked {
				style = style.Foreground(theme.TextDim)
			} else {
				style = style.Foreground(theme.Text)
			}
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
