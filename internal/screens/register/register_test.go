package register

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen/screentest"
	"github.com/abhisek/disha/internal/screens/login"
	"github.com/abhisek/disha/internal/student"
)

// fill types values into every text field, leaving the class picker on its
// default unless classSteps moves it.
func fill(s *RegisterScreen, values map[string]string, classSteps int) {
	for i, f := range s.form.Fields {
		if len(f.Choices) > 0 {
			for range classSteps {
				s.Update(screentest.SpecialKey(tea.KeyRight))
			}
		} else {
			screentest.Type(s, values[f.Key])
		}
		if i < len(s.form.Fields)-1 {
			s.Update(screentest.SpecialKey(tea.KeyTab))
		}
	}
}

func validValues() map[string]string {
	return map[string]string{
		"name":             "Asha Verma",
		"college_name":     "Govt Girls School",
		"parents_name":     "Ravi Verma",
		"parents_phone":    "9123456780",
		"email":            "Asha@Example.com",
		"password":         "secret1",
		"confirm_password": "secret1",
	}
}

func TestRegister_Success(t *testing.T) {
	env := screentest.NewEnv(t)
	s := New(env)
	fill(s, validValues(), 1)
	require.True(t, s.form.OnLast())

	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	res, ok := cmd().(registerResultMsg)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, student.Class12th, res.Student.Class)
	assert.Equal(t, "asha@example.com", res.Student.Email)

	_, cmd = s.Update(res)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	require.IsType(t, &login.LoginScreen{}, replace.Screen)
	assert.Contains(t, replace.Screen.View(100, 30), SuccessNotice)
}

func TestRegister_ValidationErrorsShownInline(t *testing.T) {
	s := New(screentest.NewEnv(t))
	vals := validValues()
	vals["parents_phone"] = "12345"
	vals["confirm_password"] = "other12"
	fill(s, vals, 0)

	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	_, isResult := screentest.Find[registerResultMsg](cmd)
	assert.False(t, isResult, "invalid form must not reach the service")

	assert.Equal(t, "parents_phone must be a 10-digit phone number", s.form.Fields[4].Err)
	assert.Equal(t, "passwords do not match", s.form.Fields[7].Err)
	assert.Equal(t, 4, s.form.Focused, "focus jumps to the first bad field")
	assert.Contains(t, s.View(100, 40), "Please fix the highlighted fields")
}

func TestRegister_EmailTaken(t *testing.T) {
	env := screentest.NewEnv(t)
	_, err := env.Students.EnsureDemoStudent(context.Background())
	require.NoError(t, err)

	s := New(env)
	vals := validValues()
	vals["email"] = student.DemoEmail
	fill(s, vals, 0)

	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	res := cmd().(registerResultMsg)
	require.ErrorIs(t, res.Err, student.ErrEmailTaken)

	s.Update(res)
	assert.Equal(t, student.ErrEmailTaken.Error(), s.form.Fields[5].Err)
	assert.Equal(t, 5, s.form.Focused)
}
