package quizlist

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qz "github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen/screentest"
	quizscreen "github.com/abhisek/disha/internal/screens/quiz"
	"github.com/abhisek/disha/internal/student"
)

func ids(qs []*qz.Quiz) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestQuizList_TenthGradeSeesAcademic(t *testing.T) {
	env := screentest.NewEnv(t)
	s := New(env, &student.Student{ID: "s", Class: student.Class10th})

	assert.Equal(t, []string{"coding-1", "aptitude-1", "class10-math", "class10-science"}, ids(s.Visible()))
	assert.Len(t, s.tabs, 4, "all + three categories")
}

func TestQuizList_CollegeStudentSkipsAcademic(t *testing.T) {
	env := screentest.NewEnv(t)
	s := New(env, &student.Student{ID: "s", Class: student.ClassUG})

	assert.Equal(t, []string{"coding-1", "aptitude-1"}, ids(s.Visible()))
	assert.Len(t, s.tabs, 3)
}

func TestQuizList_CategoryTabs(t *testing.T) {
	env := screentest.NewEnv(t)
	s := New(env, &student.Student{ID: "s", Class: student.Class10th})

	s.Update(screentest.SpecialKey(tea.KeyLeft))
	assert.Equal(t, qz.CategoryAcademic, s.tabs[s.tab])
	assert.Equal(t, []string{"class10-math", "class10-science"}, ids(s.Visible()))

	s.Update(screentest.SpecialKey(tea.KeyRight))
	assert.Len(t, s.Visible(), 4)
}

func TestQuizList_StartQuiz(t *testing.T) {
	env := screentest.NewEnv(t)
	s := New(env, &student.Student{ID: "s", Class: student.Class10th})

	s.Update(screentest.SpecialKey(tea.KeyDown))
	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	require.IsType(t, &quizscreen.QuizScreen{}, push.Screen)
	assert.Equal(t, "Logical Reasoning", push.Screen.Title())
}

func TestQuizList_View(t *testing.T) {
	env := screentest.NewEnv(t)
	s := New(env, &student.Student{ID: "s", Class: student.Class10th})
	view := s.View(100, 40)
	assert.Contains(t, view, "Mathematics - Algebra")
	assert.Contains(t, view, "10 questions · 1 min each")
}
