package login

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screen/screentest"
	"github.com/abhisek/disha/internal/screens/dashboard"
)

func submit(t *testing.T, s *LoginScreen) loginResultMsg {
	t.Helper()
	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(loginResultMsg)
	require.True(t, ok)
	return msg
}

func TestLogin_DemoAccount(t *testing.T) {
	env := screentest.NewEnv(t)
	_, err := env.Students.EnsureDemoStudent(context.Background())
	require.NoError(t, err)

	s := New(env)
	s.Update(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	require.True(t, s.form.OnLast())

	res := submit(t, s)
	require.NoError(t, res.Err)

	_, cmd := s.Update(res)
	changed, ok := screentest.Find[screen.StudentChangedMsg](cmd)
	require.True(t, ok)
	assert.Equal(t, "Demo Student", changed.Student.Name)

	reset, ok := screentest.Find[router.ResetScreenMsg](cmd)
	require.True(t, ok)
	assert.IsType(t, &dashboard.DashboardScreen{}, reset.Screen)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := screentest.NewEnv(t)
	_, err := env.Students.EnsureDemoStudent(context.Background())
	require.NoError(t, err)

	s := New(env)
	screentest.Type(s, "student@demo.com")
	s.Update(screentest.SpecialKey(tea.KeyTab))
	screentest.Type(s, "wrong1")

	res := submit(t, s)
	require.Error(t, res.Err)

	s.Update(res)
	assert.Contains(t, s.View(100, 30), "Invalid email or password")
}

func TestLogin_EmptyFields(t *testing.T) {
	s := New(screentest.NewEnv(t))
	s.Update(screentest.SpecialKey(tea.KeyTab))

	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, "Please enter your email address", s.errMsg)
}

func TestLogin_EnterOnEmailMovesToPassword(t *testing.T) {
	s := New(screentest.NewEnv(t))
	s.Update(screentest.SpecialKey(tea.KeyEnter))
	assert.True(t, s.form.OnLast())
}

func TestLogin_NoticeAfterRegistration(t *testing.T) {
	s := NewWithNotice(screentest.NewEnv(t), "asha@example.com", "Registration successful!")
	assert.Equal(t, "asha@example.com", s.form.Values()["email"])
	assert.True(t, s.form.OnLast())
	assert.Contains(t, s.View(100, 30), "Registration successful!")
}
