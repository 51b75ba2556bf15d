package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/disha/internal/quiz"
)

func TestRecordRoundTrip(t *testing.T) {
	s := completed(3, 1, quiz.NoAnswer, 2)
	r := Calculate(s, s.StartTime.Add(90*time.Second))

	rec := r.Record("att-1", "stu-1")
	require.Len(t, rec.Answers, 3)
	assert.Equal(t, "att-1", rec.ID)
	assert.Equal(t, "stu-1", rec.StudentID)
	assert.Equal(t, "coding", rec.Category)
	assert.Equal(t, 33, rec.Score)
	assert.Equal(t, 90*time.Second, rec.TimeSpent)
	assert.Equal(t, 1, rec.Answers[1].Position)
	assert.Equal(t, quiz.NoAnswer, rec.Answers[1].Selected)

	back := FromRecord(rec, s.Quiz)
	assert.Equal(t, r.Score, back.Score)
	assert.Equal(t, r.Skipped, back.Skipped)
	assert.Equal(t, r.Review(), back.Review())
}

func TestFromRecord_WithoutQuiz(t *testing.T) {
	s := completed(2, 1, 1)
	rec := Calculate(s, s.StartTime).Record("a", "s")

	r := FromRecord(rec, nil)
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, 2, r.Total)
	assert.Empty(t, r.Items)
}

func TestFromRecord_DropsUnknownQuestions(t *testing.T) {
	s := completed(2, 1, 0)
	rec := Calculate(s, s.StartTime).Record("a", "s")
	rec.Answers[0].QuestionID = "gone"

	r := FromRecord(rec, s.Quiz)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "b", r.Items[0].Question.ID)
	assert.Equal(t, 50, r.Score, "stored score is kept")
}
