package session

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/metrics"
	"github.com/abhisek/cinematch/internal/pitch"
	"github.com/abhisek/cinematch/internal/quiz"
)

func testEngine(t *testing.T) *quiz.Engine {
	t.Helper()
	e, err := quiz.NewEngine(quiz.Default())
	require.NoError(t, err)
	return e
}

// answerAll picks choice i on every question.
func answerAll(s *State, i int) {
	s.Current = 0
	for {
		s.Select(i)
		if !s.Next() {
			return
		}
	}
}

func TestNewState(t *testing.T) {
	s := NewState(quiz.Default())
	assert.Len(t, s.ID, 36)
	assert.NotEqual(t, s.ID, NewState(quiz.Default()).ID)
	assert.Equal(t, PhaseAnswering, s.Phase)
	assert.Equal(t, 0, s.Answers.Len())
	assert.Equal(t, -1, s.Selected())
}

func TestState_Navigation(t *testing.T) {
	s := NewState(quiz.Default())
	assert.False(t, s.Prev())
	for range len(s.Config.Questions) - 1 {
		require.True(t, s.Next())
	}
	assert.False(t, s.Next())
	assert.Equal(t, len(s.Config.Questions)-1, s.Current)

	require.True(t, s.Jump(s.Config.Questions[1].ID))
	assert.Equal(t, 1, s.Current)
	assert.False(t, s.Jump("nope"))
}

func TestState_SelectAndClear(t *testing.T) {
	s := NewState(quiz.Default())
	s.Select(2)
	assert.Equal(t, 2, s.Selected())
	s.Select(1)
	assert.Equal(t, 1, s.Selected(), "reselecting replaces the answer")
	s.Select(9)
	assert.Equal(t, 1, s.Selected(), "out of range is ignored")

	s.Clear()
	assert.Equal(t, -1, s.Selected())
	assert.Equal(t, 0, s.Progress().Answered)
}

func TestProgress(t *testing.T) {
	s := NewState(quiz.Default())
	p := s.Progress()
	assert.Equal(t, 5, p.Total)
	assert.Zero(t, p.Fraction())
	assert.False(t, p.Complete())

	s.Select(0)
	assert.InDelta(t, 0.2, s.Progress().Fraction(), 1e-9)

	answerAll(s, 3)
	assert.True(t, s.Progress().Complete())
	assert.Zero(t, Progress{}.Fraction())
}

func TestSubmit_MissingAnswers(t *testing.T) {
	e := testEngine(t)
	s := NewState(e.Config())
	s.Select(0)
	s.Next()
	s.Select(1)

	before := testutil.ToFloat64(metrics.MissingAnswers)
	res, err := Submit(s, e)
	require.Error(t, err)
	assert.Nil(t, res)

	var missing *quiz.MissingAnswersError
	require.True(t, errors.As(err, &missing))
	want := []string{e.Config().Questions[2].ID, e.Config().Questions[3].ID, e.Config().Questions[4].ID}
	assert.Equal(t, want, missing.QuestionIDs)
	assert.Equal(t, want, s.Missing)
	assert.Equal(t, PhaseWarning, s.Phase)
	assert.Equal(t, 2, s.Answers.Len(), "answers survive a rejected submit")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.MissingAnswers))

	s.DismissWarning()
	assert.Equal(t, PhaseAnswering, s.Phase)
	assert.Equal(t, 2, s.Current, "dismiss lands on the first missing question")
}

func TestSubmit_SelectClearsWarningWhenComplete(t *testing.T) {
	e := testEngine(t)
	s := NewState(e.Config())
	answerAll(s, 0)
	s.Clear()

	_, err := Submit(s, e)
	require.Error(t, err)
	require.Equal(t, PhaseWarning, s.Phase)

	s.Select(0)
	assert.Equal(t, PhaseAnswering, s.Phase)
	assert.Empty(t, s.Missing)
}

func TestSubmit_Classifies(t *testing.T) {
	e := testEngine(t)
	s := NewState(e.Config())
	answerAll(s, 2)

	want, err := e.Classify(s.Answers)
	require.NoError(t, err)

	counter := metrics.Classifications.WithLabelValues(string(want.Category), string(want.Label))
	before := testutil.ToFloat64(counter)

	res, err := Submit(s, e)
	require.NoError(t, err)
	assert.Equal(t, want, *res)
	assert.Equal(t, PhaseClassified, s.Phase)
	assert.Same(t, res, s.Result)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestTallyRows(t *testing.T) {
	cfg := quiz.Default()
	res := quiz.Result{
		Category: quiz.CategoryCheerful,
		Tally: quiz.Tally{
			quiz.CategoryHeartfelt:   2,
			quiz.CategoryCheerful:    2,
			quiz.CategoryAdventurous: 1,
		},
	}
	rows := TallyRows(cfg, res)
	require.Len(t, rows, 4)
	for i, cat := range cfg.Priority {
		assert.Equal(t, cat, rows[i].Category)
	}
	var winners int
	for _, r := range rows {
		if r.Winner {
			winners++
			assert.Equal(t, quiz.CategoryCheerful, r.Category)
			assert.InDelta(t, 0.4, r.Share, 1e-9)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestRecommend(t *testing.T) {
	cfg := quiz.Default()
	items := []catalog.Item{
		{ID: 1, Title: "Knives Out", Rating: 7.8, VoteCount: 100},
		{ID: 2, Title: "Gone Girl", Rating: 8.1, VoteCount: 200},
		{ID: 3, Title: "Zodiac"},
	}
	fetcher := catalog.NewMockFetcher(map[quiz.Label][]catalog.Item{quiz.LabelMystery: items})
	r := NewRecommender(fetcher, pitch.NewTemplateWriter(cfg))
	res := quiz.Result{Category: quiz.CategoryReflective, Label: quiz.LabelMystery}

	rec, err := r.Recommend(context.Background(), "sid", res, 2)
	require.NoError(t, err)
	assert.Equal(t, "sid", rec.SessionID)
	require.Len(t, rec.Items, 2)
	require.Len(t, rec.Pitches, 2)
	assert.Contains(t, rec.PitchFor(2), "Gone Girl")
	assert.Empty(t, rec.PitchFor(3))

	_, err = r.Recommend(context.Background(), "sid", res, 0)
	require.NoError(t, err)
	_, err = r.Recommend(context.Background(), "sid", res, 500)
	require.NoError(t, err)
	assert.Equal(t, []catalog.MockCall{
		{Label: quiz.LabelMystery, Limit: 2},
		{Label: quiz.LabelMystery, Limit: DefaultLimit},
		{Label: quiz.LabelMystery, Limit: MaxLimit},
	}, fetcher.Calls)
}

func TestRecommend_EmptyAndError(t *testing.T) {
	cfg := quiz.Default()
	fetcher := catalog.NewMockFetcher(nil)
	r := NewRecommender(fetcher, pitch.NewTemplateWriter(cfg))
	res := quiz.Result{Category: quiz.CategoryCheerful, Label: quiz.LabelComedy}

	rec, err := r.Recommend(context.Background(), "sid", res, 3)
	require.NoError(t, err)
	assert.NotNil(t, rec.Items)
	assert.Empty(t, rec.Items)
	assert.Empty(t, rec.Pitches)

	fetcher.Err = &catalog.Error{Kind: catalog.KindUnauthorized, StatusCode: 401}
	_, err = r.Recommend(context.Background(), "sid", res, 3)
	require.Error(t, err)
	assert.Equal(t, catalog.KindUnauthorized, catalog.KindOf(err))
}
