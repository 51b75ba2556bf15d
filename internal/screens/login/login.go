// Package login is the student login form.
package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/dashboard"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

type loginResultMsg struct {
	Student *student.Student
	Err     error
}

// LoginScreen asks for email and password.
type LoginScreen struct {
	env     *screen.Env
	form    components.Form
	notice  string
	errMsg  string
	pending bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates an empty login form.
func New(env *screen.Env) *LoginScreen {
	return &LoginScreen{
		env: env,
		form: components.NewForm(
			components.FormField{Key: "email", Label: "Email", Input: components.NewTextInput("Enter your email address", false, 120)},
			components.FormField{Key: "password", Label: "Password", Input: components.NewPasswordInput("Enter your password")},
		),
	}
}

// NewWithNotice creates a login form with email prefilled and a message
// shown above it, used after registration.
func NewWithNotice(env *screen.Env, email, notice string) *LoginScreen {
	s := New(env)
	s.form.Fields[0].Input.SetValue(email)
	s.form.Next()
	s.notice = notice
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *LoginScreen) Title() string {
	return "Student Login"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Login"},
		{Key: "Ctrl+D", Description: "Demo account"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = errorText(msg.Err)
			return s, nil
		}
		s.env.Log.Info().Str("student_id", msg.Student.ID).Msg("login from tui")
		return s, tea.Batch(
			screen.StudentChanged(msg.Student),
			router.Reset(dashboard.New(s.env, msg.Student)),
		)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+d":
			s.form.Fields[0].Input.SetValue(student.DemoEmail)
			s.form.Fields[1].Input.SetValue(student.DemoPassword)
			return s, s.form.Next()
		case "enter":
			if s.form.OnLast() {
				return s, s.submit()
			}
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.pending {
		return nil
	}
	vals := s.form.Values()
	switch {
	case vals["email"] == "":
		s.errMsg = "Please enter your email address"
		return nil
	case vals["password"] == "":
		s.errMsg = "Please enter your password"
		return nil
	}
	s.pending = true
	s.errMsg = ""
	students := s.env.Students
	in := student.LoginInput{Email: vals["email"], Password: s.form.Fields[1].Input.Value()}
	return func() tea.Msg {
		st, err := students.Login(context.Background(), in)
		return loginResultMsg{Student: st, Err: err}
	}
}

func errorText(err error) string {
	var ve *student.ValidationError
	switch {
	case errors.Is(err, student.ErrInvalidCredentials):
		return "Invalid email or password. Please check your credentials."
	case errors.As(err, &ve):
		if m := ve.Field("email"); m != "" {
			return m
		}
		return ve.Error()
	}
	return "Login failed. Please try again."
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Student Login"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Access your personalized career guidance"))
	b.WriteString("\n\n")
	if s.notice != "" {
		b.WriteString(theme.Correct.Render(s.notice) + "\n\n")
	}
	b.WriteString(components.Card(s.form.View(12), cw))
	b.WriteString("\n")
	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Logging in..."))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Demo account: " + student.DemoEmail + " / " + student.DemoPassword + " (Ctrl+D to fill)"))

	return components.Center(b.String(), width, height)
}
