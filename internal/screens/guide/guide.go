// Package guide lists the categories and labels the quiz can land on.
package guide

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/screen"
	"github.com/abhisek/cinematch/internal/ui/components"
	"github.com/abhisek/cinematch/internal/ui/layout"
	"github.com/abhisek/cinematch/internal/ui/theme"
)

// GuideScreen shows one card per category, in priority order.
type GuideScreen struct {
	cfg    *quiz.Config
	cursor int
}

var _ screen.Screen = (*GuideScreen)(nil)

// New creates the guide for cfg.
func New(cfg *quiz.Config) *GuideScreen {
	return &GuideScreen{cfg: cfg}
}

func (g *GuideScreen) Init() tea.Cmd {
	return nil
}

func (g *GuideScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return g, nil
	}
	switch kmsg.String() {
	case "up", "k", "left", "h":
		if g.cursor > 0 {
			g.cursor--
		}
	case "down", "j", "right", "l":
		if g.cursor < len(g.cfg.Priority)-1 {
			g.cursor++
		}
	}
	return g, nil
}

func (g *GuideScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	tabs := make([]string, len(g.cfg.Priority))
	for i, cat := range g.cfg.Priority {
		name := g.cfg.CategoryName(cat)
		if i == g.cursor {
			tabs[i] = theme.Selected.Render("[" + name + "]")
		} else {
			tabs[i] = theme.Unselected.Render(" " + name + " ")
		}
	}

	cat := g.cfg.Priority[g.cursor]
	content := strings.Join([]string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(tabs, "  ")),
		components.Section(g.renderCategory(cat, cw-4), cw),
		theme.Hint.Render("Ties between moods go to the one listed first."),
	}, "\n\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (g *GuideScreen) renderCategory(cat quiz.Category, w int) string {
	spec := g.cfg.Categories[cat]
	text := lipgloss.NewStyle().Width(w).Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(theme.Title.Render(g.cfg.CategoryName(cat)))
	b.WriteString("\n")
	b.WriteString(text.Render(spec.Reason))
	b.WriteString("\n")

	for _, l := range spec.Labels {
		name := g.cfg.LabelName(l)
		if spec.Compound() && l == spec.Default {
			name += " (default)"
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Marquee).Bold(true).Render("▸ " + name))
		b.WriteString("\n")
		b.WriteString(text.Foreground(theme.TextDim).Render(g.cfg.Labels[l].Reason))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (g *GuideScreen) Title() string {
	return "Genre Guide"
}

func (g *GuideScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Mood"},
		{Key: "Esc", Description: "Back"},
	}
}
