package counsel

import (
	"fmt"
	"strings"

	"github.com/abhisek/disha/internal/session"
)

const systemPrompt = `You are Disha, a friendly career counsellor for Indian school and college students. Students from small towns and government schools use this app, many of them first-generation learners. Be warm and specific, avoid jargon, and suggest realistic paths such as government colleges, scholarships and entrance exams. Never shame a low score.`

func buildUserMessage(in Input) string {
	var b strings.Builder
	r := in.Result

	fmt.Fprintf(&b, "Student: %s\n", in.Name)
	if in.Class != "" {
		fmt.Fprintf(&b, "Class: %s\n", in.Class.Label())
	}
	fmt.Fprintf(&b, "Quiz: %s (%s)\n", r.QuizTitle, r.Category.Label())
	fmt.Fprintf(&b, "Score: %d%% (%d of %d correct, %d unanswered)\n", r.Score, r.Correct, r.Total, r.Skipped)
	fmt.Fprintf(&b, "Time taken: %s\n", session.FormatDuration(r.TimeSpent))

	var missed []string
	for _, it := range r.Items {
		if !it.Correct {
			missed = append(missed, it.Question.Prompt)
		}
	}
	if len(missed) > 0 {
		b.WriteString("\nQuestions missed:\n")
		for _, m := range missed {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}

	if len(in.Recent) > 0 {
		b.WriteString("\nEarlier attempts:\n")
		for _, a := range in.Recent {
			fmt.Fprintf(&b, "- %s (%s): %d%%\n", a.QuizTitle, a.Category.Label(), a.Score)
		}
	}

	b.WriteString("\nGive career advice for this student.")
	return b.String()
}
