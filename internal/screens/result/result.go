// Package result shows a classification and the movies picked for it.
package result

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/logging"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/router"
	"github.com/abhisek/cinematch/internal/screen"
	"github.com/abhisek/cinematch/internal/screens/deps"
	"github.com/abhisek/cinematch/internal/session"
	"github.com/abhisek/cinematch/internal/ui/components"
	"github.com/abhisek/cinematch/internal/ui/layout"
	"github.com/abhisek/cinematch/internal/ui/theme"
)

// recommendationsMsg carries the outcome of the catalog request.
type recommendationsMsg struct {
	rec *session.Recommendation
	err error
}

// ResultScreen renders the verdict immediately and the candidates once the
// catalog answers.
type ResultScreen struct {
	deps      *deps.Deps
	sessionID string
	result    quiz.Result
	retake    func() screen.Screen

	spinner spinner.Model
	loading bool
	rec     *session.Recommendation
	err     error
	cursor  int
}

var (
	_ screen.Screen          = (*ResultScreen)(nil)
	_ screen.KeyHintProvider = (*ResultScreen)(nil)
)

// New creates the result screen. retake builds a fresh quiz for `r`.
func New(d *deps.Deps, sessionID string, res quiz.Result, retake func() screen.Screen) *ResultScreen {
	return &ResultScreen{
		deps:      d,
		sessionID: sessionID,
		result:    res,
		retake:    retake,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading:   true,
	}
}

func (r *ResultScreen) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, r.fetch())
}

func (r *ResultScreen) fetch() tea.Cmd {
	rec := r.deps.Recommender()
	id, res, limit := r.sessionID, r.result, r.deps.Limit
	return func() tea.Msg {
		out, err := rec.Recommend(context.Background(), id, res, limit)
		return recommendationsMsg{rec: out, err: err}
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recommendationsMsg:
		r.loading = false
		r.rec, r.err = msg.rec, msg.err
		r.cursor = 0
		if msg.err != nil {
			logging.Warn().Err(msg.err).Str("session", r.sessionID).Str("kind", catalog.KindOf(msg.err).String()).Msg("recommendations failed")
		}
		return r, nil

	case spinner.TickMsg:
		if !r.loading {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "r":
			if r.retake == nil {
				return r, nil
			}
			next := r.retake()
			return r, func() tea.Msg { return router.PopToRootMsg{Then: next} }
		case "up", "k":
			if r.cursor > 0 {
				r.cursor--
			}
		case "down", "j":
			if r.rec != nil && r.cursor < len(r.rec.Items)-1 {
				r.cursor++
			}
		}
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		r.renderVerdict(cw),
		components.Section(r.renderTally(cw-4), cw),
		r.renderCandidates(cw),
	}
	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

func (r *ResultScreen) renderVerdict(cw int) string {
	cfg := r.deps.Config()

	mood := theme.Subtitle.Render("Your movie mood: " + cfg.CategoryName(r.result.Category))
	label := lipgloss.NewStyle().
		Foreground(theme.Marquee).
		Bold(true).
		Render("★ " + strings.ToUpper(cfg.LabelName(r.result.Label)) + " ★")
	reason := lipgloss.NewStyle().Width(cw - 4).Foreground(theme.Text).Render(r.result.Reason)

	return theme.Card.Width(cw).Align(lipgloss.Center).Render(mood + "\n" + label + "\n\n" + reason)
}

func (r *ResultScreen) renderTally(w int) string {
	rows := session.TallyRows(r.deps.Config(), r.result)
	labelWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Name))
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		bar := components.ProgressBar{
			Label:     fmt.Sprintf("%-*s", labelWidth, row.Name),
			Percent:   row.Share,
			Suffix:    fmt.Sprintf("%d vote%s", row.Votes, plural(row.Votes)),
			Width:     w,
			Highlight: row.Winner,
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (r *ResultScreen) renderCandidates(cw int) string {
	switch {
	case r.loading:
		return r.spinner.View() + " " + theme.Hint.Render("Finding movies…")
	case r.err != nil:
		return theme.WarningCard.Width(cw).Render(ErrorMessage(r.err))
	case r.rec == nil || len(r.rec.Items) == 0:
		return components.Section(theme.Hint.Render(
			"The catalog has nothing for "+r.deps.Config().LabelName(r.result.Label)+" right now. Try again later."), cw)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Tonight's picks"))
	b.WriteString("\n\n")
	for i, item := range r.rec.Items {
		line := item.Title
		if y := item.Year(); y != "" {
			line += " (" + y + ")"
		}
		line += fmt.Sprintf("  ★ %.1f", item.Rating)

		if i != r.cursor {
			b.WriteString(theme.Unselected.Render("  " + line))
			b.WriteString("\n")
			continue
		}
		b.WriteString(theme.Selected.Render("▸ " + line))
		b.WriteString("\n")
		if p := r.rec.PitchFor(item.ID); p != "" {
			b.WriteString(lipgloss.NewStyle().Width(cw - 8).MarginLeft(4).Foreground(theme.Screen).Render(p))
			b.WriteString("\n")
		}
		if item.Overview != "" {
			b.WriteString(lipgloss.NewStyle().Width(cw - 8).MarginLeft(4).Foreground(theme.TextDim).Render(item.Overview))
			b.WriteString("\n")
		}
	}
	return components.Section(strings.TrimRight(b.String(), "\n"), cw)
}

// ErrorMessage turns a catalog failure into something the user can act on.
func ErrorMessage(err error) string {
	switch catalog.KindOf(err) {
	case catalog.KindNotConfigured:
		return "No TMDB key is set, so there are no movie picks this time. " +
			"Set CINEMATCH_TMDB_API_KEY or tmdb.api_key to see them."
	case catalog.KindUnauthorized:
		return "TMDB rejected the API key. Check that it is valid and try again."
	case catalog.KindTransport:
		return "Could not reach TMDB. Check your connection and try again."
	default:
		return "TMDB returned something unexpected: " + err.Error()
	}
}

func (r *ResultScreen) Title() string {
	return "Your Result"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "r", Description: "Retake"},
		{Key: "Esc", Description: "Back to answers"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
