package splash

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/router"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 600 * time.Millisecond
	taglineAt    = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const bannerArt = `
 ██████╗ ██╗███████╗██╗  ██╗ █████╗
 ██╔══██╗██║██╔════╝██║  ██║██╔══██╗
 ██║  ██║██║███████╗███████║███████║
 ██║  ██║██║╚════██║██╔══██║██╔══██║
 ██████╔╝██║███████║██║  ██║██║  ██║
 ╚═════╝ ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "D I S H A"

const tagline = "Find your direction after school"

// compass points drawn one per tick while the banner fades in
var compassFrames = []string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

type tickMsg time.Time

// SplashScreen plays a short intro and then hands over to the landing screen.
// Any key skips it.
type SplashScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*SplashScreen)(nil)

// New creates a SplashScreen that replaces itself with the screen built by next.
func New(next func() screen.Screen) *SplashScreen {
	return &SplashScreen{next: next}
}

func (s *SplashScreen) Title() string {
	return ""
}

func (s *SplashScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SplashScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if s.transitioned {
			return s, nil
		}
		s.elapsed += tickInterval
		s.tickCount++
		if s.elapsed >= totalDur {
			return s, s.transition()
		}
		return s, tick()

	case tea.KeyPressMsg:
		return s, s.transition()
	}

	return s, nil
}

func (s *SplashScreen) transition() tea.Cmd {
	if s.transitioned {
		return nil
	}
	s.transitioned = true
	return router.Replace(s.next())
}

func (s *SplashScreen) View(width, height int) string {
	compass := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(compassFrames[s.tickCount%len(compassFrames)])
	sections := []string{compass}

	if s.elapsed >= bannerAt {
		sections = append(sections, "", RenderBanner(width))
	}

	if s.elapsed >= taglineAt {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

// RenderBanner returns the DISHA banner, or a compact version for terminals
// narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
