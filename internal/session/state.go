package session

import (
	"time"

	"github.com/abhisek/disha/internal/quiz"
)

// Phase is the lifecycle position of a quiz session.
type Phase int

const (
	PhaseAwaiting  Phase = iota // Countdown running, waiting for a submit
	PhaseAnswered               // Answer locked, reveal delay pending
	PhaseComplete               // Every question has an answer
	PhaseAbandoned              // User navigated away mid-quiz
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaiting:
		return "awaiting"
	case PhaseAnswered:
		return "answered"
	case PhaseComplete:
		return "complete"
	case PhaseAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Terminal reports whether no further events can change the session.
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseAbandoned
}

// Session is an in-progress or completed attempt at a quiz.
//
// A Session is a value. Transition never mutates its input; it returns a new
// Session whose Answers slice is a fresh copy whenever an answer is appended.
type Session struct {
	// Quiz is borrowed from the catalog and never modified.
	Quiz *quiz.Quiz

	// Index is the 0-based position of the current question.
	Index int

	// Answers has one entry per question already answered, in order.
	Answers []quiz.Answer

	// StartTime is when the first question was shown.
	StartTime time.Time

	// TimeRemaining is the countdown for the current question, in seconds.
	TimeRemaining int

	// Selected is the highlighted option, or quiz.NoAnswer.
	Selected int

	Phase Phase
}

// Question returns the current question.
func (s Session) Question() quiz.Question {
	return s.Quiz.Questions[s.Index]
}

// Total returns the number of questions in the quiz.
func (s Session) Total() int {
	return len(s.Quiz.Questions)
}

// IsLast reports whether the current question is the final one.
func (s Session) IsLast() bool {
	return s.Index == len(s.Quiz.Questions)-1
}

// HasSelection reports whether an option is highlighted.
func (s Session) HasSelection() bool {
	return s.Selected != quiz.NoAnswer
}

// LastAnswer returns the most recently recorded answer.
func (s Session) LastAnswer() (quiz.Answer, bool) {
	if len(s.Answers) == 0 {
		return quiz.Answer{}, false
	}
	return s.Answers[len(s.Answers)-1], true
}
