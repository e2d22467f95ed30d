// Package questions is the quiz screen. It owns one session.State from the
// first question to a classified result.
package questions

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinematch/internal/logging"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/router"
	"github.com/abhisek/cinematch/internal/screen"
	"github.com/abhisek/cinematch/internal/screens/apikey"
	"github.com/abhisek/cinematch/internal/screens/deps"
	"github.com/abhisek/cinematch/internal/screens/result"
	"github.com/abhisek/cinematch/internal/session"
	"github.com/abhisek/cinematch/internal/ui/components"
	"github.com/abhisek/cinematch/internal/ui/layout"
	"github.com/abhisek/cinematch/internal/ui/theme"
)

// QuizScreen walks the user through the question table.
type QuizScreen struct {
	deps   *deps.Deps
	state  *session.State
	choice components.MultiChoice
	err    error
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.StatusProvider  = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
)

// New starts a fresh run with an empty answer set.
func New(d *deps.Deps) *QuizScreen {
	s := &QuizScreen{
		deps:  d,
		state: session.NewState(d.Config()),
	}
	s.syncChoice()
	return s
}

// State exposes the run, for tests and the result screen.
func (s *QuizScreen) State() *session.State {
	return s.state
}

func (s *QuizScreen) Init() tea.Cmd {
	logging.Debug().Str("session", s.state.ID).Int("questions", len(s.state.Config.Questions)).Msg("quiz started")
	return nil
}

// syncChoice rebuilds the selector for the current question.
func (s *QuizScreen) syncChoice() {
	q := s.state.Question()
	opts := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		opts[i] = c.Text
	}
	prompt := fmt.Sprintf("%d. %s", s.state.Current+1, q.Prompt)
	s.choice = components.NewMultiChoice(prompt, opts, s.state.Selected())
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.state.Phase == session.PhaseWarning {
		s.state.DismissWarning()
		s.syncChoice()
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		if s.state.Prev() {
			s.syncChoice()
		}
		return s, nil
	case "right", "l", "tab":
		if s.state.Next() {
			s.syncChoice()
		}
		return s, nil
	case "x", "backspace", "delete":
		s.state.Clear()
		s.syncChoice()
		return s, nil
	case "s":
		return s, s.submit()
	}

	before := s.choice.Chosen
	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Chosen >= 0 && s.choice.Chosen != before {
		s.state.Select(s.choice.Chosen)
		if s.state.Next() {
			s.syncChoice()
		}
	}
	return s, cmd
}

// submit classifies the answer set. Missing answers switch to the warning
// phase; success hands over to the result screen, via the key prompt when
// no catalog credential is configured.
func (s *QuizScreen) submit() tea.Cmd {
	s.err = nil
	res, err := session.Submit(s.state, s.deps.Engine)
	if err != nil {
		var missing *quiz.MissingAnswersError
		if !errors.As(err, &missing) {
			s.err = err
			logging.Err(err).Str("session", s.state.ID).Msg("classify failed")
		}
		return nil
	}

	d := s.deps
	id := s.state.ID
	retake := func() screen.Screen { return New(d) }
	results := func() screen.Screen { return result.New(d, id, *res, retake) }

	next := results()
	if d.NeedsKey() {
		next = apikey.New(d, results)
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	p := s.state.Progress()

	bar := components.ProgressBar{
		Label:   "Answered",
		Percent: p.Fraction(),
		Suffix:  fmt.Sprintf("%d/%d", p.Answered, p.Total),
		Width:   cw,
	}

	var sections []string
	sections = append(sections, bar.View())

	if s.state.Phase == session.PhaseWarning {
		sections = append(sections, s.renderWarning(cw))
	} else {
		sections = append(sections, components.Section(s.choice.View(), cw))
	}

	if s.err != nil {
		sections = append(sections, theme.Warning.Render("Could not classify: "+s.err.Error()))
	}

	nav := fmt.Sprintf("Question %d of %d", s.state.Current+1, p.Total)
	if p.Complete() && s.state.Phase == session.PhaseAnswering {
		nav += "  ·  all answered, press s to see your movie"
	}
	sections = append(sections, theme.Hint.Render(nav))

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderWarning lists the unanswered questions. It blocks input until a
// key dismisses it.
func (s *QuizScreen) renderWarning(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Warning.Render("Answer every question before submitting."))
	b.WriteString("\n\nStill missing:\n")
	for _, id := range s.state.Missing {
		q, _ := s.state.Config.Question(id)
		fmt.Fprintf(&b, "  • %s\n", q.Prompt)
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("press any key to go to the first one"))
	return theme.WarningCard.Width(cw).Render(b.String())
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows answered/total in the header.
func (s *QuizScreen) Status() string {
	p := s.state.Progress()
	return fmt.Sprintf("%d/%d answered", p.Answered, p.Total)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.state.Phase == session.PhaseWarning {
		return []layout.KeyHint{{Key: "Any key", Description: "Dismiss"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-D/Enter", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "x", Description: "Clear"},
		{Key: "s", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}
