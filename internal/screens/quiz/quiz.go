// Package quiz hosts a timed quiz session in the TUI. Engine effects become
// bubbletea commands: the countdown is a chain of one-second ticks tagged
// with a generation, and the reveal delay is a single delayed message.
package quiz

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/results"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	resultsscreen "github.com/abhisek/disha/internal/screens/results"
	sess "github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/layout"
)

// QuizScreen runs one attempt at a quiz.
type QuizScreen struct {
	env     *screen.Env
	student *student.Student
	quiz    *qz.Quiz

	state      sess.Session
	started    bool
	gen        int64
	confirming bool
	hint       string
	errMsg     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates a quiz screen. The countdown starts in Init.
func New(env *screen.Env, st *student.Student, q *qz.Quiz) *QuizScreen {
	return &QuizScreen{env: env, student: st, quiz: q}
}

func (s *QuizScreen) Init() tea.Cmd {
	state, effects, err := sess.New(s.quiz, s.env.Clock())
	if err != nil {
		s.env.Log.Error().Err(err).Str("quiz", s.quiz.ID).Msg("cannot start quiz")
		s.errMsg = err.Error()
		return nil
	}
	s.state = state
	s.started = true
	s.env.Log.Info().Str("quiz", s.quiz.ID).Str("student_id", s.student.ID).Msg("quiz started")
	return s.run(effects)
}

func (s *QuizScreen) Title() string {
	return s.quiz.Title
}

// HandlesBack keeps the app from popping the screen on Esc; the quiz asks
// for confirmation first.
func (s *QuizScreen) HandlesBack() bool {
	return s.started && !s.state.Phase.Terminal()
}

// Session returns the current engine state.
func (s *QuizScreen) Session() sess.Session {
	return s.state
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.state.Phase == sess.PhaseAnswered:
		return []layout.KeyHint{{Key: "…", Description: "Next question"}}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Choose"},
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if !s.started {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
			return s, router.Pop()
		}
		return s, nil
	}

	switch msg := msg.(type) {
	case countdownTickMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		effects := s.apply(sess.Tick{})
		if len(effects) == 0 {
			if s.state.Phase != sess.PhaseAwaiting {
				return s, nil
			}
			return s, tickCmd(s.gen)
		}
		return s, s.run(effects)

	case advanceMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		return s, s.run(s.apply(sess.Advance{Index: msg.Index}))

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

// apply feeds ev to the engine and keeps the new state. Only user-correctable
// errors come back; they are shown as a hint until the player acts again.
func (s *QuizScreen) apply(ev sess.Event) []sess.Effect {
	next, effects, err := sess.Transition(s.state, ev)
	switch ev.(type) {
	case sess.Select, sess.Submit:
		s.hint = ""
	}
	if errors.Is(err, sess.ErrNoSelection) {
		s.hint = "Pick an option first"
	}
	if next.Index != s.state.Index {
		s.hint = ""
	}
	s.state = next
	return effects
}

// run turns engine effects into commands.
func (s *QuizScreen) run(effects []sess.Effect) tea.Cmd {
	var cmds []tea.Cmd
	queue := effects
	for len(queue) > 0 {
		eff := queue[0]
		queue = queue[1:]

		switch eff := eff.(type) {
		case sess.StartCountdown:
			s.gen = nextGen()
			cmds = append(cmds, tickCmd(s.gen))

		case sess.StopCountdown:
			s.gen = nextGen()

		case sess.ScheduleAdvance:
			if s.env.RevealDelay <= 0 {
				queue = append(queue, s.apply(sess.Advance{Index: eff.Index})...)
				continue
			}
			cmds = append(cmds, advanceCmd(s.gen, eff.Index, s.env.RevealDelay))

		case sess.Completed:
			r := results.Calculate(eff.Session, s.env.Clock())
			s.env.Log.Info().Str("quiz", s.quiz.ID).Int("score", r.Score).Msg("quiz completed")
			cmds = append(cmds, router.Replace(resultsscreen.New(s.env, s.student, r)))

		case sess.Abandoned:
			s.env.Log.Info().Str("quiz", s.quiz.ID).Int("index", s.state.Index).Msg("quiz abandoned")
			cmds = append(cmds, router.Pop())
		}
	}
	return tea.Batch(cmds...)
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.state.Phase.Terminal() {
		return nil
	}

	if s.confirming {
		switch msg.String() {
		case "y", "Y":
			s.confirming = false
			return s.run(s.apply(sess.Abandon{}))
		case "n", "N", "esc":
			s.confirming = false
		}
		return nil
	}

	key := msg.String()
	switch key {
	case "esc":
		s.confirming = true
		return nil
	case "enter", "space":
		return s.run(s.apply(sess.Submit{}))
	case "up", "k":
		s.moveSelection(-1)
		return nil
	case "down", "j":
		s.moveSelection(1)
		return nil
	}

	if i, ok := optionIndex(key); ok {
		s.apply(sess.Select{Option: i})
	}
	return nil
}

func (s *QuizScreen) moveSelection(delta int) {
	if s.state.Phase != sess.PhaseAwaiting {
		return
	}
	n := len(s.state.Question().Options)
	i := s.state.Selected
	switch {
	case i == qz.NoAnswer && delta > 0:
		i = 0
	case i == qz.NoAnswer:
		i = n - 1
	default:
		i = (i + delta + n) % n
	}
	s.apply(sess.Select{Option: i})
}

// optionIndex maps 1-9 and a-i to zero-based option indexes.
func optionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch c := key[0]; {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'i':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'I':
		return int(c - 'A'), true
	}
	return 0, false
}
