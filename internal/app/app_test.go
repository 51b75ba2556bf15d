package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screen/screentest"
	"github.com/abhisek/disha/internal/screens/dashboard"
	"github.com/abhisek/disha/internal/screens/landing"
	quizscreen "github.com/abhisek/disha/internal/screens/quiz"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/layout"
)

type stubScreen struct {
	title    string
	back     bool
	received []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.received = append(s.received, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "stub content" }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) HandlesBack() bool    { return s.back }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "X", Description: "Stub action"}}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func skipSplash(t *testing.T, m AppModel) AppModel {
	t.Helper()
	m, cmd := update(t, m, screentest.KeyPress('x'))
	msg, ok := screentest.Find[router.ReplaceScreenMsg](cmd)
	require.True(t, ok)
	m, _ = update(t, m, msg)
	return m
}

func TestApp_SplashHandsOverToLanding(t *testing.T) {
	env := screentest.NewEnv(t)
	m := skipSplash(t, newAppModel(env, nil))

	_, ok := m.router.Active().(*landing.LandingScreen)
	assert.True(t, ok)
	require.NotNil(t, env.Landing)
	_, ok = env.Landing().(*landing.LandingScreen)
	assert.True(t, ok)
}

func TestApp_RestoredStudentGoesToDashboard(t *testing.T) {
	env := screentest.NewEnv(t)
	st := screentest.Demo(t, env)
	m := skipSplash(t, newAppModel(env, st))

	_, ok := m.router.Active().(*dashboard.DashboardScreen)
	assert.True(t, ok)
	assert.Equal(t, st.Name, m.studentName())
}

func TestApp_StudentChangedUpdatesHeader(t *testing.T) {
	env := screentest.NewEnv(t)
	m := newAppModel(env, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, screen.StudentChangedMsg{Student: &student.Student{Name: "Priya Sharma"}})
	assert.Contains(t, m.render(), "Priya Sharma")

	m, _ = update(t, m, screen.StudentChangedMsg{})
	assert.Empty(t, m.studentName())
}

func TestApp_EscPopsScreens(t *testing.T) {
	env := screentest.NewEnv(t)
	m := newAppModel(env, nil)
	m.router.Push(&stubScreen{title: "Child"})
	require.Equal(t, 2, m.router.Depth())

	m, cmd := update(t, m, screentest.SpecialKey(tea.KeyEsc))
	msg, ok := screentest.Find[router.PopScreenMsg](cmd)
	require.True(t, ok)
	m, _ = update(t, m, msg)
	assert.Equal(t, 1, m.router.Depth())

	_, cmd = update(t, m, screentest.SpecialKey(tea.KeyEsc))
	assert.Nil(t, cmd, "root screen stays")
}

func TestApp_EscForwardedToBackHandler(t *testing.T) {
	env := screentest.NewEnv(t)
	m := newAppModel(env, nil)
	child := &stubScreen{title: "Quiz", back: true}
	m.router.Push(child)

	m, _ = update(t, m, screentest.SpecialKey(tea.KeyEsc))
	assert.Equal(t, 2, m.router.Depth())
	require.Len(t, child.received, 1)

	child.back = false
	_, cmd := update(t, m, screentest.SpecialKey(tea.KeyEsc))
	_, ok := screentest.Find[router.PopScreenMsg](cmd)
	assert.True(t, ok)
}

func TestApp_ViewUsesScreenHints(t *testing.T) {
	env := screentest.NewEnv(t)
	m := newAppModel(env, nil)
	m.router.Push(&stubScreen{title: "Child"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	content := m.render()
	assert.Contains(t, content, "Child")
	assert.Contains(t, content, "stub content")
	assert.Contains(t, content, "Stub action")
	assert.Contains(t, content, "Quit")
}

func TestApp_TooSmall(t *testing.T) {
	env := screentest.NewEnv(t)
	m := newAppModel(env, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})

	assert.NotContains(t, m.render(), "stub content")
	assert.NotEmpty(t, m.render())
}

func TestApp_CtrlCQuits(t *testing.T) {
	env := screentest.NewEnv(t)
	m := newAppModel(env, nil)

	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	_, ok := screentest.Find[tea.QuitMsg](cmd)
	assert.True(t, ok)
}

func TestApp_QuizModeQuitsOnRootPop(t *testing.T) {
	env := screentest.NewEnv(t)
	st := screentest.Demo(t, env)
	q, ok := env.Catalog.QuizByID("coding-1")
	require.True(t, ok)

	m := newQuizModel(env, st, q)
	m.Init()
	assert.Equal(t, st.Name, m.studentName())

	_, cmd := update(t, m, router.PopScreenMsg{})
	_, ok = screentest.Find[tea.QuitMsg](cmd)
	assert.True(t, ok)
}

func TestApp_RetakeBuildsQuizScreen(t *testing.T) {
	env := screentest.NewEnv(t)
	st := screentest.Demo(t, env)
	q, ok := env.Catalog.QuizByID("coding-1")
	require.True(t, ok)

	newAppModel(env, st)
	require.NotNil(t, env.PlayQuiz)

	qs, ok := env.PlayQuiz(st, q).(*quizscreen.QuizScreen)
	require.True(t, ok)
	assert.Equal(t, q.Title, qs.Title())
}
