// Package landing is the role selection screen shown after the splash.
package landing

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/screens/login"
	"github.com/abhisek/disha/internal/screens/placeholder"
	"github.com/abhisek/disha/internal/screens/register"
	"github.com/abhisek/disha/internal/ui/components"
	"github.com/abhisek/disha/internal/ui/layout"
	"github.com/abhisek/disha/internal/ui/theme"
)

const intro = "Discover your ideal career path, explore courses, find nearby\n" +
	"colleges, and get personalized guidance for your future."

// LandingScreen lets the user pick how they want to use the app.
type LandingScreen struct {
	env  *screen.Env
	menu components.Menu
}

var _ screen.Screen = (*LandingScreen)(nil)
var _ screen.KeyHintProvider = (*LandingScreen)(nil)

func New(env *screen.Env) *LandingScreen {
	s := &LandingScreen{env: env}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label:  "Student Login",
			Detail: "continue where you left off",
			Action: func() tea.Cmd { return router.Push(login.New(env)) },
		},
		{
			Label:  "Register as Student",
			Detail: "new here? create an account",
			Action: func() tea.Cmd { return router.Push(register.New(env)) },
		},
		{
			Label:  "Join as Counsellor",
			Detail: "guide students",
			Action: func() tea.Cmd {
				return router.Push(placeholder.New("Counsellor",
					"Connect with students, manage sessions and track their progress."))
			},
		},
		{
			Label:  "Register Institute",
			Detail: "government colleges",
			Action: func() tea.Cmd {
				return router.Push(placeholder.New("Institute",
					"List your programs, reach more students and track applications."))
			},
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	})
	return s
}

func (s *LandingScreen) Init() tea.Cmd {
	return nil
}

func (s *LandingScreen) Title() string {
	return "Welcome"
}

func (s *LandingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "q" {
		return s, tea.Quit
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LandingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Shape Your Future With The Right Guidance"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(intro))
	b.WriteString("\n\n")
	b.WriteString(components.Card(s.menu.View(), cw))

	if !layout.IsCompactHeight(height) {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Boost enrollment · Reduce dropouts · Empower girls · Aware parents"))
	}

	return components.Center(b.String(), width, height)
}
