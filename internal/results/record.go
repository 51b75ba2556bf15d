package results

import (
	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/store"
)

// Record converts r into a storable attempt for studentID.
func (r Result) Record(id, studentID string) *store.AttemptRecord {
	rec := &store.AttemptRecord{
		ID:          id,
		StudentID:   studentID,
		QuizID:      r.QuizID,
		QuizTitle:   r.QuizTitle,
		Category:    string(r.Category),
		Score:       r.Score,
		Correct:     r.Correct,
		Total:       r.Total,
		TimeSpent:   r.TimeSpent,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		Answers:     make([]store.AnswerRecord, 0, len(r.Items)),
	}
	for i, it := range r.Items {
		rec.Answers = append(rec.Answers, store.AnswerRecord{
			Position:   i,
			QuestionID: it.Question.ID,
			Selected:   it.Selected,
			Correct:    it.Correct,
		})
	}
	return rec
}

// FromRecord rebuilds a Result from a stored attempt. q supplies question
// text for the review; answers to questions q no longer has are dropped from
// Items but the stored totals are kept. q may be nil.
func FromRecord(rec *store.AttemptRecord, q *quiz.Quiz) Result {
	r := Result{
		QuizID:      rec.QuizID,
		QuizTitle:   rec.QuizTitle,
		Category:    quiz.Category(rec.Category),
		Score:       rec.Score,
		Correct:     rec.Correct,
		Total:       rec.Total,
		TimeSpent:   rec.TimeSpent,
		StartedAt:   rec.StartedAt,
		CompletedAt: rec.CompletedAt,
	}
	if q == nil {
		return r
	}
	r.Subject = q.Subject
	for _, ans := range rec.Answers {
		qq, ok := q.QuestionByID(ans.QuestionID)
		if !ok {
			continue
		}
		it := Item{Question: qq, Selected: ans.Selected, Correct: ans.Correct}
		if it.Skipped() {
			r.Skipped++
		}
		r.Items = append(r.Items, it)
	}
	return r
}
