package results

import (
	"math"
	"time"

	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/session"
)

// Band is a coarse performance bracket used for feedback copy.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandNeedsWork Band = "needs-work"
)

// BandFor returns the band for a 0–100 score.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	}
	return BandNeedsWork
}

// Message is the headline shown on the results screen.
func (b Band) Message() string {
	switch b {
	case BandExcellent:
		return "Excellent work!"
	case BandGood:
		return "Good effort!"
	}
	return "Keep practising!"
}

// Item is one reviewed question.
type Item struct {
	Question quiz.Question
	Selected int
	Correct  bool
}

// Skipped reports whether the question timed out unanswered.
func (i Item) Skipped() bool { return i.Selected == quiz.NoAnswer }

// Result is the scored outcome of a completed session.
type Result struct {
	QuizID      string
	QuizTitle   string
	Category    quiz.Category
	Subject     string
	Score       int
	Correct     int
	Total       int
	Skipped     int
	TimeSpent   time.Duration
	StartedAt   time.Time
	CompletedAt time.Time
	Items       []Item
}

// Band returns the performance band for the score.
func (r Result) Band() Band { return BandFor(r.Score) }

// ReviewEntry is one line of the answer review.
type ReviewEntry struct {
	Number      int
	Prompt      string
	Answer      string
	CorrectText string
	Correct     bool
	Skipped     bool
	Explanation string
}

// NotAnswered is shown in the review for a question that timed out.
const NotAnswered = "Not answered"

// Review lists every question in quiz order with the chosen and the
// correct option text.
func (r Result) Review() []ReviewEntry {
	out := make([]ReviewEntry, 0, len(r.Items))
	for i, it := range r.Items {
		e := ReviewEntry{
			Number:      i + 1,
			Prompt:      it.Question.Prompt,
			Answer:      NotAnswered,
			Correct:     it.Correct,
			Skipped:     it.Skipped(),
			Explanation: it.Question.Explanation,
		}
		if it.Selected >= 0 && it.Selected < len(it.Question.Options) {
			e.Answer = it.Question.Options[it.Selected]
		}
		if c := it.Question.Correct; c >= 0 && c < len(it.Question.Options) {
			e.CorrectText = it.Question.Options[c]
		}
		out = append(out, e)
	}
	return out
}

// Calculate scores a completed session. Answers are matched to questions by
// ID; a question with no recorded answer counts as skipped.
func Calculate(s session.Session, completedAt time.Time) Result {
	q := s.Quiz
	byID := make(map[string]int, len(s.Answers))
	for _, a := range s.Answers {
		byID[a.QuestionID] = a.Selected
	}

	r := Result{
		QuizID:      q.ID,
		QuizTitle:   q.Title,
		Category:    q.Category,
		Subject:     q.Subject,
		Total:       len(q.Questions),
		StartedAt:   s.StartTime,
		CompletedAt: completedAt,
		TimeSpent:   completedAt.Sub(s.StartTime),
	}
	if r.TimeSpent < 0 {
		r.TimeSpent = 0
	}

	for _, qq := range q.Questions {
		selected, ok := byID[qq.ID]
		if !ok {
			selected = quiz.NoAnswer
		}
		item := Item{Question: qq, Selected: selected, Correct: qq.IsCorrect(selected)}
		if item.Correct {
			r.Correct++
		}
		if item.Skipped() {
			r.Skipped++
		}
		r.Items = append(r.Items, item)
	}

	if r.Total > 0 {
		r.Score = int(math.Round(float64(r.Correct) / float64(r.Total) * 100))
	}
	return r
}
