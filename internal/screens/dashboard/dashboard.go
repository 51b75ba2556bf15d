// Package dashboard is the logged-in student's home screen.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/catalog"
	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/guide"
	"github.com/abhisek/disha/internal/screens/history"
	"github.com/abhisek/disha/internal/screens/placeholder"
	"github.com/abhisek/disha/internal/screens/quizlist"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

type statsLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

type logoutMsg struct {
	Err error
}

// Section is one entry on the dashboard menu.
type Section struct {
	ID          string
	Title       string
	Description string
	open        func() tea.Cmd
}

// DashboardScreen shows the student's profile, guidance sections and
// upcoming deadlines.
type DashboardScreen struct {
	env          *screen.Env
	student      *student.Student
	sections     []Section
	menu         components.Menu
	scholarships []catalog.Scholarship
	exams        []catalog.Exam
	attempts     []store.AttemptRecord
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

func New(env *screen.Env, st *student.Student) *DashboardScreen {
	d := &DashboardScreen{
		env:          env,
		student:      st,
		scholarships: env.Catalog.Scholarships(string(st.Class)),
		exams:        env.Catalog.Exams(string(st.Class)),
	}
	d.sections = d.buildSections()

	items := make([]components.MenuItem, 0, len(d.sections)+1)
	for _, sec := range d.sections {
		items = append(items, components.MenuItem{Label: sec.Title, Detail: sec.Description, Action: sec.open})
	}
	items = append(items, components.MenuItem{Label: "Logout", Action: d.logout})
	d.menu = components.NewMenu(items)
	return d
}

// Sections returns the sections shown to this student.
func (d *DashboardScreen) Sections() []Section {
	return d.sections
}

func (d *DashboardScreen) buildSections() []Section {
	env, st := d.env, d.student
	openGuide := func(sec guide.Section) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(guide.New(env, st, sec)) }
	}
	soon := func(title, detail string) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(placeholder.New(title, detail)) }
	}

	all := []struct {
		Section
		show bool
	}{
		{Section{ID: "quiz", Title: "Interest Based Quiz",
			Description: "discover your strengths with timed quizzes",
			open:        func() tea.Cmd { return router.Push(quizlist.New(env, st)) }}, true},
		{Section{ID: "history", Title: "My Quiz History",
			Description: "review past attempts",
			open:        func() tea.Cmd { return router.Push(history.New(env, st)) }}, true},
		{Section{ID: "counsellor", Title: "Connect to Counsellor",
			Description: "expert guidance from career counsellors",
			open:        soon("Counsellor", "Book a session with a professional career counsellor.")}, true},
		{Section{ID: "colleges", Title: "Nearby Colleges/Schools",
			Description: fmt.Sprintf("%d institutions near you", len(env.Catalog.Colleges(""))),
			open:        openGuide(guide.Colleges)}, true},
		{Section{ID: "scholarships", Title: "Scholarship Dates",
			Description: fmt.Sprintf("%d active scholarships", len(d.scholarships)),
			open:        openGuide(guide.Scholarships)}, true},
		{Section{ID: "exams", Title: "Exam Information",
			Description: fmt.Sprintf("%d upcoming exams for %s", len(d.exams), st.Class),
			open:        openGuide(guide.Exams)}, true},
		{Section{ID: "roadmap", Title: "Career Roadmap",
			Description: "career paths and requirements",
			open:        soon("Career Roadmap", "Explore detailed career paths and what each one needs.")}, true},
		{Section{ID: "stress", Title: "Stress Release Section",
			Description: "mental health support",
			open:        soon("Stress Release", "Mental health support and stress management resources.")}, true},
		{Section{ID: "girls-support", Title: "Girls Education Support",
			Description: "free bus service and safety",
			open:        openGuide(guide.Transport)}, st.Class.InSchool()},
	}

	out := make([]Section, 0, len(all))
	for _, s := range all {
		if s.show {
			out = append(out, s.Section)
		}
	}
	return out
}

func (d *DashboardScreen) Init() tea.Cmd {
	attempts, id := d.env.Attempts, d.student.ID
	return func() tea.Msg {
		recs, err := attempts.List(context.Background(), id, store.QueryOpts{Limit: 5})
		return statsLoadedMsg{Attempts: recs, Err: err}
	}
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "L", Description: "Logout"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) logout() tea.Cmd {
	students := d.env.Students
	return func() tea.Msg {
		return logoutMsg{Err: students.Logout(context.Background())}
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		d.loaded = true
		if msg.Err != nil {
			d.env.Log.Error().Err(msg.Err).Msg("load recent attempts")
			d.errMsg = "Could not load your recent quizzes"
			return d, nil
		}
		d.attempts = msg.Attempts
		return d, nil

	case logoutMsg:
		if msg.Err != nil {
			d.errMsg = "Logout failed: " + msg.Err.Error()
			return d, nil
		}
		d.env.Log.Info().Str("student_id", d.student.ID).Msg("student logged out")
		if d.env.Landing == nil {
			return d, tea.Quit
		}
		return d, tea.Batch(screen.StudentChanged(nil), router.Reset(d.env.Landing()))

	case tea.KeyPressMsg:
		if msg.String() == "l" {
			return d, d.logout()
		}
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Welcome back, %s!", d.student.Name)))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("%s · %s", d.student.Class.Label(), d.student.CollegeName)))
	b.WriteString("\n\n")
	b.WriteString(d.renderStats())
	b.WriteString("\n\n")
	b.WriteString(components.Card(d.menu.View(), cw))

	if !layout.IsCompactHeight(height) {
		b.WriteString("\n")
		b.WriteString(d.renderDeadlines())
	}
	if d.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(d.errMsg))
	}

	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(b.String())
}

func (d *DashboardScreen) renderStats() string {
	stat := func(label, value string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Render(theme.Muted.Render(label) + "\n" + theme.Body.Bold(true).Render(value))
	}

	quizzes := "…"
	if d.loaded {
		quizzes = "none yet"
		if len(d.attempts) > 0 {
			quizzes = fmt.Sprintf("%d%% on %s", d.attempts[0].Score, d.attempts[0].QuizTitle)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Current Class", string(d.student.Class)), " ",
		stat("Active Scholarships", fmt.Sprint(len(d.scholarships))), " ",
		stat("Upcoming Exams", fmt.Sprint(len(d.exams))), " ",
		stat("Last Quiz", quizzes),
	)
}

func (d *DashboardScreen) renderDeadlines() string {
	now := d.env.Clock()
	var lines []string
	for _, s := range d.scholarships {
		lines = append(lines, fmt.Sprintf("  %-28s ₹%-8d %s", s.Name, s.Amount, catalog.FormatDeadline(now, s.Deadline.Time)))
	}
	for _, e := range d.exams {
		lines = append(lines, fmt.Sprintf("  %-28s %-9s %s", e.Name, "register", catalog.FormatDeadline(now, e.RegistrationDeadline.Time)))
	}
	if len(lines) == 0 {
		return theme.Hint.Render("  No upcoming deadlines")
	}
	return theme.Heading.Render("Upcoming deadlines") + "\n" + theme.Body.Render(strings.Join(lines, "\n"))
}
