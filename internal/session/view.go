package session

import (
	"fmt"
	"time"

	"github.com/abhisek/disha/internal/quiz"
)

// View is the presentation model for the current question.
type View struct {
	QuizTitle string
	Question  quiz.Question
	Position  int // 1-based
	Total     int

	TimeRemaining   int
	TimePerQuestion int

	Selected int
	Locked   bool

	// Correct and Explanation are only populated once the answer is locked.
	Correct     int
	Explanation string

	Phase Phase
}

// View builds the presentation model for s.
func (s Session) View() View {
	v := View{
		QuizTitle:       s.Quiz.Title,
		Question:        s.Question(),
		Position:        s.Index + 1,
		Total:           s.Total(),
		TimeRemaining:   s.TimeRemaining,
		TimePerQuestion: s.Quiz.TimePerQuestion,
		Selected:        s.Selected,
		Locked:          s.Phase != PhaseAwaiting,
		Correct:         quiz.NoAnswer,
		Phase:           s.Phase,
	}
	if v.Locked {
		v.Correct = v.Question.Correct
		v.Explanation = v.Question.Explanation
	}
	return v
}

// Progress is the fraction of the quiz reached so far, counting the current
// question, in [0, 1].
func (v View) Progress() float64 {
	if v.Total == 0 {
		return 0
	}
	return float64(v.Position) / float64(v.Total)
}

// Urgent reports whether the countdown should be drawn as a warning.
func (v View) Urgent() bool {
	return v.TimeRemaining <= 10
}

// Elapsed is the time used on the current question.
func (v View) Elapsed() time.Duration {
	return time.Duration(v.TimePerQuestion-v.TimeRemaining) * time.Second
}

// Clock formats the remaining time as m:ss.
func (v View) Clock() string {
	return FormatClock(v.TimeRemaining)
}

// OptionState describes how option i should be drawn.
type OptionState int

const (
	OptionPlain OptionState = iota
	OptionSelected
	OptionCorrect
	OptionWrong
)

// OptionState returns the rendering state for option i.
func (v View) OptionState(i int) OptionState {
	if v.Locked {
		switch {
		case i == v.Correct:
			return OptionCorrect
		case i == v.Selected:
			return OptionWrong
		}
		return OptionPlain
	}
	if i == v.Selected {
		return OptionSelected
	}
	return OptionPlain
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// FormatDuration renders a duration as "Xm Ys", or "Ys" under a minute.
func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	if total < 0 {
		total = 0
	}
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}
