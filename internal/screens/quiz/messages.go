package quiz

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// generations hands out countdown generations. It is shared by every quiz
// screen so a tick left over from an abandoned quiz never matches a later one.
var generations atomic.Int64

func nextGen() int64 {
	return generations.Add(1)
}

// countdownTickMsg is one second of the countdown. Gen is the countdown
// generation that scheduled it; a tick from an older generation is dropped.
type countdownTickMsg struct {
	Gen int64
}

// advanceMsg moves past a locked answer once the reveal delay has passed.
// Gen is the generation current when the answer was locked.
type advanceMsg struct {
	Gen   int64
	Index int
}

func tickCmd(gen int64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{Gen: gen}
	})
}

func advanceCmd(gen int64, index int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return advanceMsg{Gen: gen, Index: index}
	})
}
