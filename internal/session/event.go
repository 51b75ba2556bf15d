package session

import "time"

// Event is an input to Transition.
type Event interface{ isEvent() }

// Tick is one elapsed second of the countdown.
type Tick struct{}

// Select highlights an option on the current question.
type Select struct{ Option int }

// Submit locks in the highlighted option.
type Submit struct{}

// TimeUp forces the current question to expire.
type TimeUp struct{}

// Advance moves past an answered question. Index must match the question
// that was answered; advances scheduled for an earlier question are ignored.
type Advance struct{ Index int }

// Abandon discards the session.
type Abandon struct{}

func (Tick) isEvent()    {}
func (Select) isEvent()  {}
func (Submit) isEvent()  {}
func (TimeUp) isEvent()  {}
func (Advance) isEvent() {}
func (Abandon) isEvent() {}

// Effect is an instruction from Transition to the host that drives the session.
type Effect interface{ isEffect() }

// StartCountdown asks the host to begin one-second ticks for question Index.
type StartCountdown struct{ Index int }

// StopCountdown asks the host to cancel any pending tick. A tick that was
// already in flight must not be delivered.
type StopCountdown struct{}

// ScheduleAdvance asks the host to send Advance{Index} after Delay.
type ScheduleAdvance struct {
	Index int
	Delay time.Duration
}

// Completed carries the finished session to the results stage.
type Completed struct{ Session Session }

// Abandoned tells the host to leave the quiz without a result.
type Abandoned struct{}

func (StartCountdown) isEffect()  {}
func (StopCountdown) isEffect()   {}
func (ScheduleAdvance) isEffect() {}
func (Completed) isEffect()       {}
func (Abandoned) isEffect()       {}
