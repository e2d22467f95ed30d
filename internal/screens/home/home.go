package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinematch/internal/router"
	"github.com/abhisek/cinematch/internal/screen"
	"github.com/abhisek/cinematch/internal/screens/deps"
	"github.com/abhisek/cinematch/internal/screens/guide"
	"github.com/abhisek/cinematch/internal/screens/questions"
	"github.com/abhisek/cinematch/internal/ui/components"
	"github.com/abhisek/cinematch/internal/ui/layout"
	"github.com/abhisek/cinematch/internal/ui/theme"
)

var menuLabels = []string{"TAKE THE QUIZ", "GENRE GUIDE", "EXIT"}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps *deps.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen over the shared dependencies.
func New(d *deps.Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: questions.New(d)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: guide.New(d.Config())}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: d,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.IsCompactHeight(height + 8)

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Marquee).
		Bold(true).
		Render("★  NOW SHOWING: YOU  ★")

	var sections []string
	sections = append(sections, title)
	if !compact {
		blurb := fmt.Sprintf("%d questions, one movie mood.", len(h.deps.Config().Questions))
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(blurb))
	}
	sections = append(sections,
		components.Section(h.statusLine(), cw),
		components.MenuButtons(h.menu.Labels(), h.menu.Selected, cw),
	)

	return components.MarqueeFrame(strings.Join(sections, "\n\n"), width, height)
}

// statusLine reports whether recommendations can be fetched.
func (h *HomeScreen) statusLine() string {
	catalogStatus := theme.Hint.Render("Catalog: no TMDB key yet, you can add one after the quiz")
	if h.deps.CatalogConfigured() {
		catalogStatus = lipgloss.NewStyle().Foreground(theme.Success).Render("Catalog: TMDB ready")
	}
	if h.deps.PitchSource == "" {
		return catalogStatus
	}
	return catalogStatus + "\n" + theme.Hint.Render("Pitches: "+h.deps.PitchSource)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
