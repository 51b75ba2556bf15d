// Package register is the student registration form.
package register

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/login"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// SuccessNotice is shown on the login screen after registering.
const SuccessNotice = "Registration successful! Please login to continue."

type registerResultMsg struct {
	Student *student.Student
	Err     error
}

// RegisterScreen collects a new student's details.
type RegisterScreen struct {
	env     *screen.Env
	form    components.Form
	errMsg  string
	pending bool
}

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

func New(env *screen.Env) *RegisterScreen {
	classes := make([]string, len(student.Classes))
	for i, c := range student.Classes {
		classes[i] = string(c)
	}
	return &RegisterScreen{
		env: env,
		form: components.NewForm(
			components.FormField{Key: "name", Label: "Full name", Input: components.NewTextInput("Enter your full name", false, 80)},
			components.FormField{Key: "class", Label: "Class", Choices: classes},
			components.FormField{Key: "college_name", Label: "School", Input: components.NewTextInput("Your school or college", false, 120)},
			components.FormField{Key: "parents_name", Label: "Parent", Input: components.NewTextInput("Parent or guardian name", false, 80)},
			components.FormField{Key: "parents_phone", Label: "Phone", Input: components.NewTextInput("10-digit phone number", true, 10)},
			components.FormField{Key: "email", Label: "Email", Input: components.NewTextInput("Enter your email address", false, 120)},
			components.FormField{Key: "password", Label: "Password", Input: components.NewPasswordInput("At least 6 characters")},
			components.FormField{Key: "confirm_password", Label: "Confirm", Input: components.NewPasswordInput("Repeat your password")},
		),
	}
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *RegisterScreen) Title() string {
	return "Student Registration"
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Pick class"},
		{Key: "Enter", Description: "Register"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		s.pending = false
		var ve *student.ValidationError
		switch {
		case msg.Err == nil:
			s.env.Log.Info().Str("student_id", msg.Student.ID).Msg("student registered")
			return s, router.Replace(login.NewWithNotice(s.env, msg.Student.Email, SuccessNotice))
		case errors.As(msg.Err, &ve):
			s.errMsg = "Please fix the highlighted fields"
			return s, s.form.SetErrors(ve.Fields)
		case errors.Is(msg.Err, student.ErrEmailTaken):
			s.errMsg = ""
			return s, s.form.SetErrors(map[string]string{"email": msg.Err.Error()})
		}
		s.env.Log.Error().Err(msg.Err).Msg("registration failed")
		s.errMsg = "Registration failed. Please try again."
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" && s.form.OnLast() {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	return s, cmd
}

func (s *RegisterScreen) input() student.RegisterInput {
	v := s.form.Values()
	return student.RegisterInput{
		Name:            v["name"],
		Class:           v["class"],
		CollegeName:     v["college_name"],
		ParentsName:     v["parents_name"],
		ParentsPhone:    v["parents_phone"],
		Email:           v["email"],
		Password:        s.form.Fields[6].Input.Value(),
		ConfirmPassword: s.form.Fields[7].Input.Value(),
	}
}

func (s *RegisterScreen) submit() tea.Cmd {
	if s.pending {
		return nil
	}
	in := s.input()
	var ve *student.ValidationError
	if err := in.Validate(); errors.As(err, &ve) {
		s.errMsg = "Please fix the highlighted fields"
		return s.form.SetErrors(ve.Fields)
	}
	s.form.SetErrors(nil)
	s.pending = true
	s.errMsg = ""
	students := s.env.Students
	return func() tea.Msg {
		st, err := students.Register(context.Background(), in)
		return registerResultMsg{Student: st, Err: err}
	}
}

func (s *RegisterScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Student Registration"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Join thousands of students planning their future"))
	b.WriteString("\n\n")
	b.WriteString(components.Card(s.form.View(12), cw))
	b.WriteString("\n")
	switch {
	case s.pending:
		b.WriteString(theme.Hint.Render("Creating your account..."))
	case s.errMsg != "":
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return components.Center(b.String(), width, height)
}
