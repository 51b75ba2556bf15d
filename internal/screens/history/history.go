package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/results"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

type detailLoadedMsg struct {
	ID     string
	Result results.Result
	Err    error
}

// HistoryScreen lists past quiz attempts. Enter expands an attempt into its
// answer review.
type HistoryScreen struct {
	env      *screen.Env
	student  *student.Student
	attempts []store.AttemptRecord
	details  map[string]results.Result
	expanded string
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen for st.
func New(env *screen.Env, st *student.Student) *HistoryScreen {
	return &HistoryScreen{
		env:     env,
		student: st,
		details: make(map[string]results.Result),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	attempts, id := s.env.Attempts, s.student.ID
	return func() tea.Msg {
		recs, err := attempts.List(context.Background(), id, store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Attempts: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Quiz History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Review"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) loadDetail(id string) tea.Cmd {
	attempts, cat := s.env.Attempts, s.env.Catalog
	return func() tea.Msg {
		rec, err := attempts.Get(context.Background(), id)
		if err != nil {
			return detailLoadedMsg{ID: id, Err: err}
		}
		q, _ := cat.QuizByID(rec.QuizID)
		return detailLoadedMsg{ID: id, Result: results.FromRecord(rec, q)}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.attempts = msg.Attempts
		return s, nil

	case detailLoadedMsg:
		if msg.Err != nil {
			s.env.Log.Error().Err(msg.Err).Str("attempt", msg.ID).Msg("load attempt")
			s.errMsg = "Could not load that attempt"
			return s, nil
		}
		s.details[msg.ID] = msg.Result
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			if len(s.attempts) == 0 {
				return s, nil
			}
			id := s.attempts[s.selected].ID
			if s.expanded == id {
				s.expanded = ""
				return s, nil
			}
			s.expanded = id
			if _, ok := s.details[id]; !ok {
				return s, s.loadDetail(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes taken yet. Try one from the dashboard!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, a := range s.attempts {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s  %-28s %3d%%  %d/%d  %s",
			prefix, a.CompletedAt.Local().Format("Jan 02, 2006"), a.QuizTitle,
			a.Score, a.Correct, a.Total, session.FormatDuration(a.TimeSpent))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if a.ID == s.expanded {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderDetail(a.ID, width)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderDetail(id string, width int) string {
	r, ok := s.details[id]
	if !ok {
		return theme.Hint.Render("Loading review...")
	}
	if len(r.Items) == 0 {
		return theme.Hint.Render("This quiz is no longer in the catalog")
	}
	return components.Card(RenderReview(r.Review()), components.ContentWidth(width))
}

// RenderReview formats review entries as the results screen and history
// detail show them.
func RenderReview(entries []results.ReviewEntry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		mark := theme.Correct.Render("✓")
		if !e.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		fmt.Fprintf(&b, "%s %d. %s\n", mark, e.Number, theme.Body.Render(e.Prompt))
		answer := theme.Muted.Render("   Your answer: ") + e.Answer
		if e.Skipped {
			answer = theme.Muted.Render("   Your answer: ") + theme.Hint.Render(e.Answer)
		}
		b.WriteString(answer + "\n")
		if !e.Correct {
			b.WriteString(theme.Muted.Render("   Correct: ") + theme.Correct.Render(e.CorrectText) + "\n")
		}
		if e.Explanation != "" {
			b.WriteString(theme.Hint.Render("   "+e.Explanation) + "\n")
		}
	}
	return b.String()
}
