// Package results shows a scored quiz attempt. It saves the attempt, asks
// the counsellor for advice and can expand the full answer review.
package results

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/disha/internal/counsel"
	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/results"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/history"
	"github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// adviceTimeout bounds a counsellor request so the panel never spins forever.
const adviceTimeout = 45 * time.Second

// recentAttempts is how many earlier attempts are passed to the counsellor.
const recentAttempts = 5

type attemptSavedMsg struct {
	ID     string
	Recent []counsel.Attempt
	Err    error
}

type adviceMsg struct {
	Advice counsel.Advice
	Err    error
}

// ResultsScreen shows the outcome of one quiz attempt.
type ResultsScreen struct {
	env     *screen.Env
	student *student.Student
	result  results.Result

	savedID    string
	saveErr    string
	advice     *counsel.Advice
	adviceErr  string
	showReview bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a results screen for r.
func New(env *screen.Env, st *student.Student, r results.Result) *ResultsScreen {
	return &ResultsScreen{env: env, student: st, result: r}
}

// Result returns the scored attempt.
func (s *ResultsScreen) Result() results.Result {
	return s.result
}

// Advice returns the counsellor advice once it has arrived.
func (s *ResultsScreen) Advice() (counsel.Advice, bool) {
	if s.advice == nil {
		return counsel.Advice{}, false
	}
	return *s.advice, true
}

func (s *ResultsScreen) Init() tea.Cmd {
	attempts, r, studentID := s.env.Attempts, s.result, s.student.ID
	id := uuid.New().String()
	return func() tea.Msg {
		ctx := context.Background()
		if err := attempts.Save(ctx, r.Record(id, studentID)); err != nil {
			return attemptSavedMsg{Err: err}
		}
		recs, err := attempts.List(ctx, studentID, store.QueryOpts{Limit: recentAttempts + 1})
		if err != nil {
			return attemptSavedMsg{ID: id, Err: err}
		}
		return attemptSavedMsg{ID: id, Recent: recentExcept(recs, id)}
	}
}

func recentExcept(recs []store.AttemptRecord, id string) []counsel.Attempt {
	out := make([]counsel.Attempt, 0, len(recs))
	for _, rec := range recs {
		if rec.ID == id {
			continue
		}
		out = append(out, counsel.Attempt{
			QuizTitle: rec.QuizTitle,
			Category:  quiz.Category(rec.Category),
			Score:     rec.Score,
		})
	}
	return out
}

func (s *ResultsScreen) advise(recent []counsel.Attempt) tea.Cmd {
	svc := s.env.Counsel
	in := counsel.Input{
		Name:   s.student.Name,
		Class:  s.student.Class,
		Result: s.result,
		Recent: recent,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
		defer cancel()
		advice, err := svc.Advise(ctx, in)
		return adviceMsg{Advice: advice, Err: err}
	}
}

func (s *ResultsScreen) Title() string {
	return "Quiz Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	review := "Show review"
	if s.showReview {
		review = "Hide review"
	}
	hints := []layout.KeyHint{{Key: "R", Description: review}}
	if s.canRetake() {
		hints = append(hints, layout.KeyHint{Key: "T", Description: "Retake quiz"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Done"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// retakeQuiz returns the quiz to play again, if the app can start one.
func (s *ResultsScreen) retakeQuiz() (*quiz.Quiz, bool) {
	if s.env.PlayQuiz == nil {
		return nil, false
	}
	return s.env.Catalog.QuizByID(s.result.QuizID)
}

func (s *ResultsScreen) canRetake() bool {
	_, ok := s.retakeQuiz()
	return ok
}

// retake replaces this screen with a new attempt at the same quiz.
func (s *ResultsScreen) retake() tea.Cmd {
	q, ok := s.retakeQuiz()
	if !ok {
		return nil
	}
	s.env.Log.Info().Str("quiz", q.ID).Str("student_id", s.student.ID).Msg("quiz retake")
	return router.Replace(s.env.PlayQuiz(s.student, q))
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptSavedMsg:
		if msg.Err != nil {
			s.env.Log.Error().Err(msg.Err).Str("quiz", s.result.QuizID).Msg("save attempt")
			s.saveErr = "Your result could not be saved"
		}
		s.savedID = msg.ID
		return s, s.advise(msg.Recent)

	case adviceMsg:
		if msg.Err != nil {
			s.adviceErr = "The counsellor is unavailable right now"
			return s, nil
		}
		s.advice = &msg.Advice
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r", "R":
			s.showReview = !s.showReview
		case "t", "T":
			return s, s.retake()
		case "enter", "esc":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	r := s.result

	var b strings.Builder
	b.WriteString(theme.Heading.Render(r.QuizTitle))
	b.WriteString("\n\n")

	score := bandStyle(r.Band()).Bold(true).Render(fmt.Sprintf("%d%%", r.Score))
	summary := fmt.Sprintf("%s   %d of %d correct", score, r.Correct, r.Total)
	if r.Skipped > 0 {
		summary += theme.Muted.Render(fmt.Sprintf("   %d not answered", r.Skipped))
	}
	summary += theme.Muted.Render("   Time " + session.FormatDuration(r.TimeSpent))
	b.WriteString(summary)
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(r.Band().Message()))
	b.WriteString("\n")
	if s.saveErr != "" {
		b.WriteString(theme.ErrorText.Render(s.saveErr) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(components.Card(s.renderAdvice(), cw))
	b.WriteString("\n")

	if s.showReview {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Answer review"))
		b.WriteString("\n\n")
		b.WriteString(history.RenderReview(r.Review()))
	}

	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(b.String())
}

func (s *ResultsScreen) renderAdvice() string {
	title := theme.Subtitle.Render("Counsellor says")
	switch {
	case s.adviceErr != "":
		return title + "\n" + theme.Hint.Render(s.adviceErr)
	case s.advice == nil:
		return title + "\n" + theme.Hint.Render("Thinking about your result...")
	}

	a := s.advice
	var b strings.Builder
	b.WriteString(title)
	if a.Source == counsel.SourceOffline {
		b.WriteString("  " + theme.Badge.Render("offline"))
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(a.Summary))
	b.WriteString("\n")
	writeList(&b, "Strengths", a.Strengths)
	writeList(&b, "Next steps", a.NextSteps)
	writeList(&b, "Streams to explore", a.Streams)
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + theme.Muted.Render(heading) + "\n")
	for _, it := range items {
		b.WriteString("  • " + it + "\n")
	}
}

func bandStyle(band results.Band) lipgloss.Style {
	switch band {
	case results.BandExcellent:
		return theme.Correct
	case results.BandGood:
		return lipgloss.NewStyle().Foreground(theme.Warning)
	}
	return theme.Incorrect
}
