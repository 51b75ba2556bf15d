package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/disha/internal/quiz"
)

func TestView_HidesCorrectUntilLocked(t *testing.T) {
	s := mustNew(t, testQuiz(2, 60))
	s, _ = step(t, s, Select{Option: 3})

	v := s.View()
	assert.Equal(t, 1, v.Position)
	assert.Equal(t, 2, v.Total)
	assert.False(t, v.Locked)
	assert.Equal(t, quiz.NoAnswer, v.Correct)
	assert.Empty(t, v.Explanation)
	assert.Equal(t, OptionSelected, v.OptionState(3))
	assert.Equal(t, OptionPlain, v.OptionState(0))

	s, _ = step(t, s, Submit{})
	v = s.View()
	assert.True(t, v.Locked)
	assert.Equal(t, 0, v.Correct)
	assert.Equal(t, "because", v.Explanation)
	assert.Equal(t, OptionCorrect, v.OptionState(0))
	assert.Equal(t, OptionWrong, v.OptionState(3))
	assert.Equal(t, OptionPlain, v.OptionState(1))
}

func TestView_Progress(t *testing.T) {
	s := mustNew(t, testQuiz(4, 60))
	assert.InDelta(t, 0.25, s.View().Progress(), 1e-9)
	s, _ = step(t, s, TimeUp{})
	assert.InDelta(t, 0.5, s.View().Progress(), 1e-9)
}

func TestView_Urgent(t *testing.T) {
	s := mustNew(t, testQuiz(1, 12))
	assert.False(t, s.View().Urgent())
	s, _ = step(t, s, Tick{})
	s, _ = step(t, s, Tick{})
	assert.True(t, s.View().Urgent())
}

func TestView_Elapsed(t *testing.T) {
	s := mustNew(t, testQuiz(1, 30))
	assert.Zero(t, s.View().Elapsed())
	s, _ = step(t, s, Tick{})
	s, _ = step(t, s, Tick{})
	assert.Equal(t, 2*time.Second, s.View().Elapsed())
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{60, "1:00"},
		{59, "0:59"},
		{5, "0:05"},
		{0, "0:00"},
		{-3, "0:00"},
		{125, "2:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.in))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45s", FormatDuration(45*time.Second))
	assert.Equal(t, "2m 5s", FormatDuration(125*time.Second))
	assert.Equal(t, "0s", FormatDuration(-time.Second))
}
