package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/ui/theme"
)

// PlaceholderScreen is a generic "coming soon" screen for sections that are
// not built yet.
type PlaceholderScreen struct {
	title  string
	detail string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title. detail, when
// set, describes what the section will offer.
func New(title, detail string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, detail: detail}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := "╌╌ Coming Soon ╌╌\n\nThis section is being built.\nCheck back later!"
	if p.detail != "" {
		body += "\n\n" + theme.Hint.Render(p.detail)
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(body)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
