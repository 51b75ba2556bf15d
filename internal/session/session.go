package session

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/disha/internal/quiz"
)

// DefaultRevealDelay is how long the correct answer stays on screen after a
// submit before the next question appears.
const DefaultRevealDelay = 1500 * time.Millisecond

var (
	// ErrNoSelection is returned when Submit arrives with no option highlighted.
	ErrNoSelection = errors.New("select an option before submitting")

	// ErrOptionOutOfRange is returned when Select names an option that does not exist.
	ErrOptionOutOfRange = errors.New("option out of range")

	// ErrStaleQuestion is returned when an answer names a question that is no
	// longer awaiting one.
	ErrStaleQuestion = errors.New("question is no longer open")
)

// New starts a session on the first question of q.
func New(q *quiz.Quiz, now time.Time) (Session, []Effect, error) {
	if err := q.Validate(); err != nil {
		return Session{}, nil, err
	}
	s := Session{
		Quiz:          q,
		StartTime:     now,
		TimeRemaining: q.TimePerQuestion,
		Selected:      quiz.NoAnswer,
		Phase:         PhaseAwaiting,
	}
	return s, []Effect{StartCountdown{Index: 0}}, nil
}

// Transition applies ev to s and returns the next state with the effects the
// host must carry out. Events that do not apply to the current phase are
// no-ops. The only errors are user-correctable ones, and they leave the
// session unchanged.
func Transition(s Session, ev Event) (Session, []Effect, error) {
	if s.Phase.Terminal() {
		return s, nil, nil
	}

	switch ev := ev.(type) {
	case Tick:
		if s.Phase != PhaseAwaiting {
			return s, nil, nil
		}
		if s.TimeRemaining > 0 {
			s.TimeRemaining--
		}
		if s.TimeRemaining == 0 {
			return expire(s)
		}
		return s, nil, nil

	case Select:
		if s.Phase != PhaseAwaiting {
			return s, nil, nil
		}
		if ev.Option < 0 || ev.Option >= len(s.Question().Options) {
			return s, nil, fmt.Errorf("%w: %d", ErrOptionOutOfRange, ev.Option)
		}
		s.Selected = ev.Option
		return s, nil, nil

	case Submit:
		if s.Phase != PhaseAwaiting {
			return s, nil, nil
		}
		if !s.HasSelection() {
			return s, nil, ErrNoSelection
		}
		s = record(s, s.Selected)
		s.Phase = PhaseAnswered
		return s, []Effect{
			StopCountdown{},
			ScheduleAdvance{Index: s.Index, Delay: DefaultRevealDelay},
		}, nil

	case TimeUp:
		if s.Phase != PhaseAwaiting {
			return s, nil, nil
		}
		s.TimeRemaining = 0
		return expire(s)

	case Advance:
		if s.Phase != PhaseAnswered || ev.Index != s.Index {
			return s, nil, nil
		}
		return advance(s, nil)

	case Abandon:
		s.Phase = PhaseAbandoned
		return s, []Effect{StopCountdown{}, Abandoned{}}, nil
	}

	return s, nil, nil
}

// expire records whatever is highlighted (or NoAnswer) and moves on with no
// reveal delay.
func expire(s Session) (Session, []Effect, error) {
	s = record(s, s.Selected)
	return advance(s, []Effect{StopCountdown{}})
}

func advance(s Session, effects []Effect) (Session, []Effect, error) {
	if s.IsLast() {
		s.Phase = PhaseComplete
		return s, append(effects, Completed{Session: s}), nil
	}
	s.Index++
	s.TimeRemaining = s.Quiz.TimePerQuestion
	s.Selected = quiz.NoAnswer
	s.Phase = PhaseAwaiting
	return s, append(effects, StartCountdown{Index: s.Index}), nil
}

func record(s Session, selected int) Session {
	answers := slices.Clone(s.Answers)
	s.Answers = append(answers, quiz.Answer{
		QuestionID: s.Question().ID,
		Selected:   selected,
	})
	return s
}
