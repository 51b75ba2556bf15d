// Package guide lists the catalog's guidance data: colleges, scholarships,
// entrance exams and girls' transport routes.
package guide

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/catalog"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/student"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

// Section selects which list the screen shows.
type Section int

const (
	Colleges Section = iota
	Scholarships
	Exams
	Transport
)

func (s Section) String() string {
	switch s {
	case Colleges:
		return "Nearby Colleges"
	case Scholarships:
		return "Scholarships"
	case Exams:
		return "Entrance Exams"
	case Transport:
		return "Girls Education Support"
	}
	return "Guide"
}

// entry is one rendered list row plus its expanded detail.
type entry struct {
	title  string
	badge  string
	detail []string
}

// GuideScreen is a navigable list with one expanded entry at a time.
type GuideScreen struct {
	section  Section
	entries  []entry
	footer   string
	selected int
}

var _ screen.Screen = (*GuideScreen)(nil)
var _ screen.KeyHintProvider = (*GuideScreen)(nil)

// New builds the list for sec, filtered for the student's class where the
// data has eligibility rules.
func New(env *screen.Env, st *student.Student, sec Section) *GuideScreen {
	g := &GuideScreen{section: sec}
	now := env.Clock()
	class := string(st.Class)

	switch sec {
	case Colleges:
		for _, c := range env.Catalog.Colleges("") {
			g.entries = append(g.entries, entry{
				title: c.Name,
				badge: c.Location,
				detail: []string{
					fmt.Sprintf("Type: %s   Cutoff: %d%%   Fees: ₹%d/year", c.Type, c.Cutoff, c.Fees),
					"Courses: " + strings.Join(c.Courses, ", "),
					"Facilities: " + strings.Join(c.Facilities, ", "),
				},
			})
		}
	case Scholarships:
		for _, s := range env.Catalog.Scholarships(class) {
			g.entries = append(g.entries, entry{
				title: s.Name,
				badge: catalog.FormatDeadline(now, s.Deadline.Time),
				detail: []string{
					fmt.Sprintf("Amount: ₹%d", s.Amount),
					"Deadline: " + s.Deadline.String(),
					"Eligible: " + strings.Join(s.Eligibility, ", "),
					"Apply: " + s.ApplyLink,
				},
			})
		}
	case Exams:
		for _, e := range env.Catalog.Exams(class) {
			g.entries = append(g.entries, entry{
				title: e.Name,
				badge: e.ExamDate.String(),
				detail: []string{
					e.Description,
					"Registration closes: " + e.RegistrationDeadline.String() +
						" (" + catalog.FormatDeadline(now, e.RegistrationDeadline.Time) + ")",
				},
			})
		}
	case Transport:
		for _, r := range env.Catalog.BusRoutes() {
			g.entries = append(g.entries, entry{
				title: r.District,
				badge: r.Status.Label(),
				detail: []string{
					"Stops: " + strings.Join(r.Stops, " → "),
					fmt.Sprintf("Hours: %s   Seats: %d", r.Hours, r.Capacity),
					"Operated with: " + r.Operator,
				},
			})
		}
		if f := env.Catalog.SafetyFeatures; len(f) > 0 {
			g.footer = "Safety: " + strings.Join(f, " · ")
		}
	}
	return g
}

func (g *GuideScreen) Init() tea.Cmd {
	return nil
}

func (g *GuideScreen) Title() string {
	return g.section.String()
}

// Len is the number of entries listed.
func (g *GuideScreen) Len() int {
	return len(g.entries)
}

func (g *GuideScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (g *GuideScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return g, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if g.selected > 0 {
			g.selected--
		}
	case "down", "j":
		if g.selected < len(g.entries)-1 {
			g.selected++
		}
	}
	return g, nil
}

func (g *GuideScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if len(g.entries) == 0 {
		return components.Center(theme.Hint.Render(emptyText(g.section)), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Heading.Render(g.section.String()))
	b.WriteString("\n\n")
	for i, e := range g.entries {
		badge := theme.Badge.Render(e.badge)
		if i != g.selected {
			b.WriteString(theme.Unselected.Render("  "+e.title) + "  " + badge + "\n")
			continue
		}
		body := theme.Selected.Render("▸ "+e.title) + "  " + badge + "\n" +
			theme.Body.Render(strings.Join(e.detail, "\n"))
		b.WriteString(components.Card(body, cw))
		b.WriteString("\n")
	}
	if g.footer != "" {
		b.WriteString("\n" + theme.Hint.Render(g.footer))
	}

	return lipgloss.NewStyle().Width(width).Padding(1, 2).Render(b.String())
}

func emptyText(sec Section) string {
	switch sec {
	case Scholarships:
		return "No active scholarships found"
	case Exams:
		return "No upcoming exams found"
	}
	return "Nothing to show yet"
}
