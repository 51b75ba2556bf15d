package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/disha/internal/quiz"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testQuiz(n, seconds int) *quiz.Quiz {
	q := &quiz.Quiz{ID: "test", Title: "Test Quiz", Category: quiz.CategoryAptitude, TimePerQuestion: seconds}
	for i := range n {
		q.Questions = append(q.Questions, quiz.Question{
			ID:          string(rune('a' + i)),
			Prompt:      "question",
			Options:     []string{"w", "x", "y", "z"},
			Correct:     i % 4,
			Explanation: "because",
		})
	}
	return q
}

func mustNew(t *testing.T, q *quiz.Quiz) Session {
	t.Helper()
	s, effects, err := New(q, t0)
	require.NoError(t, err)
	require.Equal(t, []Effect{StartCountdown{Index: 0}}, effects)
	return s
}

func step(t *testing.T, s Session, ev Event) (Session, []Effect) {
	t.Helper()
	next, effects, err := Transition(s, ev)
	require.NoError(t, err)
	return next, effects
}

func TestNew_InitialState(t *testing.T) {
	s := mustNew(t, testQuiz(3, 60))
	assert.Equal(t, 0, s.Index)
	assert.Empty(t, s.Answers)
	assert.Equal(t, 60, s.TimeRemaining)
	assert.Equal(t, quiz.NoAnswer, s.Selected)
	assert.Equal(t, PhaseAwaiting, s.Phase)
	assert.Equal(t, t0, s.StartTime)
}

func TestNew_RejectsInvalidQuiz(t *testing.T) {
	tests := []struct {
		name string
		q    *quiz.Quiz
	}{
		{"empty", testQuiz(0, 60)},
		{"zero duration", testQuiz(2, 0)},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, effects, err := New(tt.q, t0)
			require.Error(t, err)
			assert.Nil(t, effects)
		})
	}
}

func TestSubmit_WithoutSelection(t *testing.T) {
	s := mustNew(t, testQuiz(2, 60))
	next, effects, err := Transition(s, Submit{})
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Nil(t, effects)
	assert.Equal(t, s, next)
}

func TestSelect_OutOfRange(t *testing.T) {
	s := mustNew(t, testQuiz(2, 60))
	next, _, err := Transition(s, Select{Option: 4})
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
	assert.Equal(t, quiz.NoAnswer, next.Selected)

	_, _, err = Transition(s, Select{Option: -1})
	assert.ErrorIs(t, err, ErrOptionOutOfRange)
}

func TestSelect_ChangesSelectionWithoutSubmitting(t *testing.T) {
	s := mustNew(t, testQuiz(2, 60))
	s, effects := step(t, s, Select{Option: 2})
	assert.Nil(t, effects)
	s, _ = step(t, s, Select{Option: 1})
	assert.Equal(t, 1, s.Selected)
	assert.Equal(t, PhaseAwaiting, s.Phase)
	assert.Empty(t, s.Answers)
}

func TestSubmit_LocksAndSchedulesAdvance(t *testing.T) {
	s := mustNew(t, testQuiz(2, 60))
	s, _ = step(t, s, Select{Option: 2})
	s, effects := step(t, s, Submit{})

	assert.Equal(t, PhaseAnswered, s.Phase)
	assert.Equal(t, []quiz.Answer{{QuestionID: "a", Selected: 2}}, s.Answers)
	assert.Equal(t, []Effect{
		StopCountdown{},
		ScheduleAdvance{Index: 0, Delay: DefaultRevealDelay},
	}, effects)

	// Everything but Advance and Abandon is inert while answered.
	for _, ev := range []Event{Tick{}, Select{Option: 1}, Submit{}, TimeUp{}} {
		next, effects, err := Transition(s, ev)
		require.NoError(t, err)
		assert.Nil(t, effects)
		assert.Equal(t, s, next, "%T should be ignored", ev)
	}
}

func TestAdvance_MovesToNextQuestion(t *testing.T) {
	s := mustNew(t, testQuiz(2, 60))
	s, _ = step(t, s, Tick{})
	s, _ = step(t, s, Select{Option: 0})
	s, _ = step(t, s, Submit{})
	s, effects := step(t, s, Advance{Index: 0})

	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 60, s.TimeRemaining)
	assert.Equal(t, quiz.NoAnswer, s.Selected)
	assert.Equal(t, PhaseAwaiting, s.Phase)
	assert.Len(t, s.Answers, 1)
	assert.Equal(t, []Effect{StartCountdown{Index: 1}}, effects)
}

func TestAdvance_StaleIndexIgnored(t *testing.T) {
	s := mustNew(t, testQuiz(3, 60))
	s, _ = step(t, s, Select{Option: 0})
	s, _ = step(t, s, Submit{})
	s, _ = step(t, s, Advance{Index: 0})

	s, _ = step(t, s, Select{Option: 1})
	s, _ = step(t, s, Submit{})

	// A duplicate advance for question 0 must not skip question 1's reveal.
	next, effects := step(t, s, Advance{Index: 0})
	assert.Nil(t, effects)
	assert.Equal(t, s, next)

	// Advance while awaiting is also inert.
	s, _ = step(t, s, Advance{Index: 1})
	next, effects = step(t, s, Advance{Index: 2})
	assert.Nil(t, effects)
	assert.Equal(t, s, next)
}

func TestTick_CountsDown(t *testing.T) {
	s := mustNew(t, testQuiz(2, 5))
	for want := 4; want >= 1; want-- {
		var effects []Effect
		s, effects = step(t, s, Tick{})
		assert.Nil(t, effects)
		assert.Equal(t, want, s.TimeRemaining)
	}
}

func TestTick_ExpiryRecordsNoAnswer(t *testing.T) {
	s := mustNew(t, testQuiz(2, 3))
	s, _ = step(t, s, Tick{})
	s, _ = step(t, s, Tick{})
	s, effects := step(t, s, Tick{})

	assert.Equal(t, []quiz.Answer{{QuestionID: "a", Selected: quiz.NoAnswer}}, s.Answers)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, 3, s.TimeRemaining)
	assert.Equal(t, PhaseAwaiting, s.Phase)
	assert.Equal(t, []Effect{StopCountdown{}, StartCountdown{Index: 1}}, effects)
}

func TestTimeUp_CountsUnsubmittedSelection(t *testing.T) {
	s := mustNew(t, testQuiz(2, 60))
	s, _ = step(t, s, Select{Option: 3})
	s, _ = step(t, s, TimeUp{})

	require.Len(t, s.Answers, 1)
	assert.Equal(t, 3, s.Answers[0].Selected)
	assert.Equal(t, 1, s.Index)
}

func TestTimeUp_OnLastQuestionCompletes(t *testing.T) {
	s := mustNew(t, testQuiz(1, 60))
	s, effects := step(t, s, TimeUp{})

	assert.Equal(t, PhaseComplete, s.Phase)
	require.Len(t, effects, 2)
	assert.Equal(t, StopCountdown{}, effects[0])
	done, ok := effects[1].(Completed)
	require.True(t, ok)
	assert.Equal(t, []quiz.Answer{{QuestionID: "a", Selected: quiz.NoAnswer}}, done.Session.Answers)
}

func TestFullRun_AnswersMatchQuestions(t *testing.T) {
	q := testQuiz(4, 10)
	s := mustNew(t, q)

	var completed *Session
	for i := range q.Questions {
		if i == 2 {
			// Let question 3 expire.
			for range 10 {
				s, _ = step(t, s, Tick{})
			}
			continue
		}
		s, _ = step(t, s, Select{Option: i % 4})
		s, _ = step(t, s, Submit{})
		var effects []Effect
		s, effects = step(t, s, Advance{Index: i})
		for _, e := range effects {
			if c, ok := e.(Completed); ok {
				completed = &c.Session
			}
		}
	}

	require.NotNil(t, completed)
	assert.Equal(t, PhaseComplete, s.Phase)
	require.Len(t, completed.Answers, len(q.Questions))
	for i, a := range completed.Answers {
		assert.Equal(t, q.Questions[i].ID, a.QuestionID)
	}
	assert.Equal(t, quiz.NoAnswer, completed.Answers[2].Selected)
}

func TestTerminalStatesIgnoreEvents(t *testing.T) {
	s := mustNew(t, testQuiz(1, 60))
	done, _ := step(t, s, TimeUp{})
	gone, effects := step(t, s, Abandon{})
	assert.Equal(t, []Effect{StopCountdown{}, Abandoned{}}, effects)
	assert.Equal(t, PhaseAbandoned, gone.Phase)

	for _, terminal := range []Session{done, gone} {
		for _, ev := range []Event{Tick{}, Select{Option: 0}, Submit{}, TimeUp{}, Advance{Index: 0}, Abandon{}} {
			next, effects, err := Transition(terminal, ev)
			require.NoError(t, err)
			assert.Nil(t, effects)
			assert.Equal(t, terminal, next)
		}
	}
}

func TestAbandon_WhileAnswered(t *testing.T) {
	s := mustNew(t, testQuiz(2, 60))
	s, _ = step(t, s, Select{Option: 0})
	s, _ = step(t, s, Submit{})
	s, _ = step(t, s, Abandon{})

	next, effects := step(t, s, Advance{Index: 0})
	assert.Nil(t, effects)
	assert.Equal(t, PhaseAbandoned, next.Phase)
}

func TestTransition_DoesNotMutateAnswers(t *testing.T) {
	s := mustNew(t, testQuiz(3, 60))
	s, _ = step(t, s, Select{Option: 1})
	s, _ = step(t, s, Submit{})
	s, _ = step(t, s, Advance{Index: 0})

	before := s.Answers
	s1, _ := step(t, s, TimeUp{})
	s2, _ := step(t, s, Select{Option: 2})
	s2, _ = step(t, s2, Submit{})

	assert.Len(t, before, 1)
	assert.Equal(t, quiz.NoAnswer, s1.Answers[1].Selected)
	assert.Equal(t, 2, s2.Answers[1].Selected)
}

func TestTimeRemainingStaysInRange(t *testing.T) {
	q := testQuiz(3, 2)
	s := mustNew(t, q)
	for range 20 {
		s, _, _ = Transition(s, Tick{})
		assert.GreaterOrEqual(t, s.TimeRemaining, 0)
		assert.LessOrEqual(t, s.TimeRemaining, q.TimePerQuestion)
	}
	assert.Equal(t, PhaseComplete, s.Phase)
	assert.Len(t, s.Answers, 3)
}
