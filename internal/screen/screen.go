package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/disha/internal/catalog"
	"github.com/abhisek/disha/internal/counsel"
	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that handle Esc themselves instead
// of letting the app pop them.
type BackHandler interface {
	HandlesBack() bool
}

// StudentChangedMsg announces a login (Student set) or logout (nil).
type StudentChangedMsg struct {
	Student *student.Student
}

// StudentChanged returns a command that emits StudentChangedMsg.
func StudentChanged(s *student.Student) tea.Cmd {
	return func() tea.Msg { return StudentChangedMsg{Student: s} }
}

// Env carries the services screens need. It is built once at startup and
// shared by pointer.
type Env struct {
	Catalog  *catalog.Catalog
	Students *student.Service
	Attempts store.AttemptRepo
	Counsel  *counsel.Service
	Log      zerolog.Logger

	// RevealDelay is how long a submitted answer stays on screen.
	RevealDelay time.Duration

	// Landing builds the role selection screen. Set by the app so screens
	// deep in the stack can return to it on logout.
	Landing func() Screen

	// PlayQuiz builds a fresh quiz screen. Set by the app so the results
	// screen can offer a retake without importing the quiz screen.
	PlayQuiz func(st *student.Student, q *quiz.Quiz) Screen

	Now func() time.Time
}

// Clock returns env.Now, falling back to time.Now.
func (e *Env) Clock() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
