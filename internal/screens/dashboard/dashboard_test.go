package dashboard

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screen/screentest"
	"github.com/abhisek/disha/internal/screens/guide"
	"github.com/abhisek/disha/internal/screens/quizlist"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/student"
)

func sectionIDs(d *DashboardScreen) []string {
	var ids []string
	for _, s := range d.Sections() {
		ids = append(ids, s.ID)
	}
	return ids
}

func registerUG(t *testing.T, env *screen.Env) *student.Student {
	t.Helper()
	st, err := env.Students.Register(context.Background(), student.RegisterInput{
		Name:            "Kabir Das",
		Class:           "UG",
		CollegeName:     "State University",
		ParentsName:     "Meera Das",
		ParentsPhone:    "9000000001",
		Email:           "kabir@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	return st
}

func TestDashboard_SchoolStudentSeesGirlsSupport(t *testing.T) {
	env := screentest.NewEnv(t)
	d := New(env, screentest.Demo(t, env))
	assert.Contains(t, sectionIDs(d), "girls-support")
	assert.Contains(t, sectionIDs(d), "quiz")
}

func TestDashboard_CollegeStudentSections(t *testing.T) {
	env := screentest.NewEnv(t)
	d := New(env, registerUG(t, env))
	assert.NotContains(t, sectionIDs(d), "girls-support")
	assert.Contains(t, sectionIDs(d), "quiz")
	assert.Len(t, d.scholarships, 1, "only the UG/PG scholarship applies")
	assert.Empty(t, d.exams)
}

func TestDashboard_OpenQuizList(t *testing.T) {
	env := screentest.NewEnv(t)
	d := New(env, screentest.Demo(t, env))

	_, cmd := d.Update(screentest.SpecialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &quizlist.QuizListScreen{}, push.Screen)
}

func TestDashboard_OpenScholarships(t *testing.T) {
	env := screentest.NewEnv(t)
	d := New(env, screentest.Demo(t, env))

	for range 4 {
		d.Update(screentest.SpecialKey(tea.KeyDown))
	}
	_, cmd := d.Update(screentest.SpecialKey(tea.KeyEnter))
	push := cmd().(router.PushScreenMsg)
	require.IsType(t, &guide.GuideScreen{}, push.Screen)
	assert.Equal(t, "Scholarships", push.Screen.Title())
}

func TestDashboard_StatsShowLastAttempt(t *testing.T) {
	env := screentest.NewEnv(t)
	st := screentest.Demo(t, env)
	require.NoError(t, env.Attempts.Save(context.Background(), &store.AttemptRecord{
		ID: "a1", StudentID: st.ID, QuizID: "coding-1", QuizTitle: "JavaScript Fundamentals",
		Category: "coding", Score: 70, Correct: 7, Total: 10,
		StartedAt: screentest.Now, CompletedAt: screentest.Now,
	}))

	d := New(env, st)
	d.Update(d.Init()())

	assert.True(t, d.loaded)
	assert.Contains(t, d.View(120, 40), "70% on JavaScript Fundamentals")
}

func TestDashboard_Logout(t *testing.T) {
	env := screentest.NewEnv(t)
	landing := &stubScreen{}
	env.Landing = func() screen.Screen { return landing }
	d := New(env, screentest.Demo(t, env))

	_, cmd := d.Update(screentest.KeyPress('l'))
	msg := cmd()
	require.IsType(t, logoutMsg{}, msg)

	_, cmd = d.Update(msg)
	reset, ok := screentest.Find[router.ResetScreenMsg](cmd)
	require.True(t, ok)
	assert.Same(t, landing, reset.Screen)

	changed, ok := screentest.Find[screen.StudentChangedMsg](cmd)
	require.True(t, ok)
	assert.Nil(t, changed.Student)

	cur, err := env.Students.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cur)
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "landing" }
func (s *stubScreen) Title() string                           { return "Welcome" }
