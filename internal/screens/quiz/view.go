package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return components.Center(theme.ErrorText.Render("This quiz cannot be started: "+s.errMsg), width, height)
	}
	if !s.started {
		return ""
	}
	if s.confirming {
		return components.Center(components.Confirm("Leave this quiz?", "Your progress will be lost.", width), width, height)
	}

	v := s.state.View()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", v.Position, v.Total)))
	b.WriteString("  ")
	b.WriteString(theme.Badge.Render(s.quiz.BadgeLabel()))
	b.WriteString("\n\n")
	b.WriteString(components.Countdown(v.TimeRemaining, v.TimePerQuestion, v.Urgent(), cw))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("Progress", v.Progress(), true, cw).View())
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(v.Question.Prompt)
	b.WriteString(components.Card(prompt, cw))
	b.WriteString("\n\n")
	b.WriteString(components.RenderOptions(v, cw))

	if v.Locked && v.Phase == sess.PhaseAnswered {
		b.WriteString("\n")
		if v.Selected == v.Correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite."))
		}
		if v.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(cw).Inherit(theme.Hint).Render(v.Explanation))
		}
		b.WriteString("\n")
	}

	if s.hint != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.hint))
	}

	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(b.String())
}
