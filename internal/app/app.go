package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/dashboard"
	"github.com/abhisek/disha/internal/screens/landing"
	quizscreen "github.com/abhisek/disha/internal/screens/quiz"
	"github.com/abhisek/disha/internal/screens/splash"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env     *screen.Env
	router  *router.Router
	student *student.Student
	width   int
	height  int

	// quitOnRootPop ends the program when the root screen asks to be popped.
	quitOnRootPop bool
}

// newAppModel creates the root model. The splash hands over to the dashboard
// when a student is still logged in from a previous run, otherwise to the
// landing screen.
func newAppModel(env *screen.Env, current *student.Student) AppModel {
	env.Landing = func() screen.Screen { return landing.New(env) }
	env.PlayQuiz = playQuiz(env)

	next := env.Landing
	if current != nil {
		next = func() screen.Screen { return dashboard.New(env, current) }
	}
	return AppModel{
		env:     env,
		router:  router.New(splash.New(next)),
		student: current,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg:
		if m.quitOnRootPop && m.router.Depth() <= 1 {
			return m, tea.Quit
		}

	case screen.StudentChangedMsg:
		m.student = msg.Student
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) studentName() string {
	if m.student == nil {
		return ""
	}
	return m.student.Name
}

func (m AppModel) footerHints() []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(hp.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quit,
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.studentName(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// newQuizModel runs a single quiz and exits once its results are dismissed
// or the quiz is abandoned.
func newQuizModel(env *screen.Env, st *student.Student, q *quiz.Quiz) AppModel {
	env.PlayQuiz = playQuiz(env)
	return AppModel{
		env:           env,
		router:        router.New(quizscreen.New(env, st, q)),
		student:       st,
		quitOnRootPop: true,
	}
}

// Run starts the Bubble Tea program. current is the student restored from
// the previous run, or nil.
func Run(env *screen.Env, current *student.Student) error {
	return run(newAppModel(env, current))
}

// RunQuiz plays one quiz for st in the TUI.
func RunQuiz(env *screen.Env, st *student.Student, q *quiz.Quiz) error {
	return run(newQuizModel(env, st, q))
}

func run(m AppModel) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

func playQuiz(env *screen.Env) func(*student.Student, *quiz.Quiz) screen.Screen {
	return func(st *student.Student, q *quiz.Quiz) screen.Screen {
		return quizscreen.New(env, st, q)
	}
}
