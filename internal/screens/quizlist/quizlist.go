// Package quizlist shows the quizzes available to the logged-in student.
package quizlist

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	quizscreen "github.com/abhisek/disha/internal/screens/quiz"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// allCategories is the "no filter" tab.
const allCategories qz.Category = ""

// QuizListScreen lists quizzes with a category filter across the top.
type QuizListScreen struct {
	env      *screen.Env
	student  *student.Student
	all      []*qz.Quiz
	tabs     []qz.Category
	tab      int
	visible  []*qz.Quiz
	selected int
}

var _ screen.Screen = (*QuizListScreen)(nil)
var _ screen.KeyHintProvider = (*QuizListScreen)(nil)

func New(env *screen.Env, st *student.Student) *QuizListScreen {
	s := &QuizListScreen{
		env:     env,
		student: st,
		all:     env.Catalog.ForClass(string(st.Class)),
		tabs:    []qz.Category{allCategories},
	}
	for _, c := range env.Catalog.Categories() {
		for _, q := range s.all {
			if q.Category == c {
				s.tabs = append(s.tabs, c)
				break
			}
		}
	}
	s.filter()
	return s
}

func (s *QuizListScreen) filter() {
	s.visible = s.visible[:0]
	want := s.tabs[s.tab]
	for _, q := range s.all {
		if want == allCategories || q.Category == want {
			s.visible = append(s.visible, q)
		}
	}
	s.selected = 0
}

// Visible returns the quizzes listed under the current tab.
func (s *QuizListScreen) Visible() []*qz.Quiz {
	return s.visible
}

func (s *QuizListScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizListScreen) Title() string {
	return "Quizzes"
}

func (s *QuizListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Category"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		s.tab = (s.tab - 1 + len(s.tabs)) % len(s.tabs)
		s.filter()
	case "right", "l", "tab":
		s.tab = (s.tab + 1) % len(s.tabs)
		s.filter()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.visible)-1 {
			s.selected++
		}
	case "enter":
		if len(s.visible) == 0 {
			return s, nil
		}
		q := s.visible[s.selected]
		s.env.Log.Info().Str("quiz", q.ID).Str("student_id", s.student.ID).Msg("quiz selected")
		return s, router.Push(quizscreen.New(s.env, s.student, q))
	}
	return s, nil
}

func (s *QuizListScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	tabs := make([]string, len(s.tabs))
	for i, c := range s.tabs {
		label := "All"
		if c != allCategories {
			label = c.Label()
		}
		if i == s.tab {
			tabs[i] = theme.ButtonActive.Render(label)
		} else {
			tabs[i] = theme.Muted.Padding(0, 2).Render(label)
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if len(s.visible) == 0 {
		b.WriteString(theme.Hint.Render("No quizzes in this category yet"))
	}
	for i, q := range s.visible {
		meta := fmt.Sprintf("%d questions · %s each", q.Len(), clockLabel(q.TimePerQuestion))
		head := "  " + q.Title
		style := theme.Unselected
		if i == s.selected {
			head = "▸ " + q.Title
			style = theme.Selected
		}
		b.WriteString(style.Render(head) + "  " + theme.Badge.Render(q.BadgeLabel()) + "\n")
		b.WriteString(theme.Muted.Render("    "+meta) + "\n\n")
	}

	body := components.Card(b.String(), cw)
	return components.Center(body, width, height)
}

func clockLabel(seconds int) string {
	if seconds%60 == 0 {
		return fmt.Sprintf("%d min", seconds/60)
	}
	return fmt.Sprintf("%ds", seconds)
}
