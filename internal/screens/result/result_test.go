package result

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/router"
	"github.com/abhisek/cinematch/internal/screen"
	"github.com/abhisek/cinematch/internal/screens/deps"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Quiz" }

// classifyAll answers every question with the choice voting for cat.
func classifyAll(t *testing.T, e *quiz.Engine, cat quiz.Category) quiz.Result {
	t.Helper()
	a := quiz.NewAnswerSet()
	for _, q := range e.Config().Questions {
		for _, c := range q.Choices {
			if c.Category == cat {
				a = a.With(q.ID, c.Text)
			}
		}
	}
	res, err := e.Classify(a)
	require.NoError(t, err)
	return res
}

func newTestScreen(t *testing.T, f *catalog.MockFetcher) (*ResultScreen, quiz.Result) {
	t.Helper()
	e, err := quiz.NewEngine(quiz.Default())
	require.NoError(t, err)
	d := &deps.Deps{Engine: e, Fetcher: f, Limit: 3}
	res := classifyAll(t, e, quiz.CategoryCheerful)
	return New(d, "sess-1", res, func() screen.Screen { return &stubScreen{} }), res
}

// load runs the catalog request synchronously.
func load(r *ResultScreen) {
	r.Update(r.fetch()())
}

func TestLoadingThenCandidates(t *testing.T) {
	f := catalog.NewMockFetcher(map[quiz.Label][]catalog.Item{
		quiz.LabelComedy: {
			{ID: 1, Title: "Paddington 2", Rating: 7.8, ReleaseDate: "2017-11-10", Overview: "A bear and a pop-up book."},
			{ID: 2, Title: "Hot Fuzz", Rating: 7.6, ReleaseDate: "2007-02-14"},
		},
	})
	r, res := newTestScreen(t, f)
	assert.Equal(t, quiz.LabelComedy, res.Label)

	view := r.View(100, 40)
	assert.Contains(t, view, "Finding movies")
	assert.Contains(t, view, "COMEDY")
	assert.Contains(t, view, res.Reason[:20])

	load(r)
	require.Equal(t, 1, f.CallCount())
	assert.Equal(t, 3, f.Calls[0].Limit)

	view = r.View(100, 40)
	assert.Contains(t, view, "Paddington 2 (2017)")
	assert.Contains(t, view, "Hot Fuzz (2007)")
	assert.Contains(t, view, "A bear and a pop-up book.")
	assert.NotContains(t, view, "Finding movies")
}

func TestCursorMovesWithinItems(t *testing.T) {
	f := catalog.NewMockFetcher(map[quiz.Label][]catalog.Item{
		quiz.LabelComedy: {{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}},
	})
	r, _ := newTestScreen(t, f)
	load(r)

	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, r.cursor)
	r.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, r.cursor)
}

func TestErrorMessagesByKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not configured", &catalog.Error{Kind: catalog.KindNotConfigured}, "No TMDB key"},
		{"unauthorized", &catalog.Error{Kind: catalog.KindUnauthorized, StatusCode: 401}, "rejected the API key"},
		{"unreachable", &catalog.Error{Kind: catalog.KindTransport}, "Could not reach TMDB"},
		{"upstream", &catalog.Error{Kind: catalog.KindUpstream, StatusCode: 500}, "unexpected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := catalog.NewMockFetcher(nil)
			f.Err = tt.err
			r, _ := newTestScreen(t, f)
			load(r)
			assert.Contains(t, r.View(100, 40), tt.want)
		})
	}
}

func TestEmptyCatalog(t *testing.T) {
	r, _ := newTestScreen(t, catalog.NewMockFetcher(nil))
	load(r)
	view := r.View(100, 40)
	assert.Contains(t, view, "nothing for Comedy")
}

func TestTallyHighlightsWinner(t *testing.T) {
	r, _ := newTestScreen(t, catalog.NewMockFetcher(nil))
	tally := r.renderTally(60)
	assert.Len(t, strings.Split(tally, "\n"), quiz.NumCategories)
	assert.Contains(t, tally, "5 votes")
	assert.Contains(t, tally, "0 votes")
}

func TestRetakePopsToRoot(t *testing.T) {
	r, _ := newTestScreen(t, catalog.NewMockFetcher(nil))
	_, cmd := r.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PopToRootMsg)
	require.True(t, ok)
	require.NotNil(t, msg.Then)
	assert.Equal(t, "Quiz", msg.Then.Title())
}
