package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/pitch"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/session"
)

func classifyAll(t *testing.T, cfg *quiz.Config, cat quiz.Category) quiz.Result {
	t.Helper()
	e, err := quiz.NewEngine(cfg)
	require.NoError(t, err)
	a := quiz.NewAnswerSet()
	for _, q := range cfg.Questions {
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

func TestResultMarkdown(t *testing.T) {
	cfg := quiz.Default()
	res := classifyAll(t, cfg, quiz.CategoryReflective)

	md := Result(cfg, res)
	assert.Contains(t, md, "# Mystery")
	assert.Contains(t, md, "**Mood:** Reflective")
	assert.Contains(t, md, res.Reason)
	assert.Contains(t, md, "| **Reflective** | 5 | 100% |")
	assert.Contains(t, md, "| Heartfelt | 0 | 0% |")
}

func TestRecommendationMarkdown(t *testing.T) {
	cfg := quiz.Default()
	res := classifyAll(t, cfg, quiz.CategoryCheerful)
	rec := &session.Recommendation{
		Result: res,
		Items:  []catalog.Item{{ID: 7, Title: "Hot Fuzz", Rating: 7.6, ReleaseDate: "2007-02-14"}, {ID: 8, Title: "Untitled"}},
		Pitches: []pitch.Pitch{
			{ItemID: 7, Text: "Village cops, big laughs.", Source: pitch.SourceTemplate},
		},
	}

	md := Recommendation(cfg, rec)
	assert.Contains(t, md, "1. **Hot Fuzz (2007)** ★ 7.6")
	assert.Contains(t, md, "   Village cops, big laughs.")
	assert.Contains(t, md, "2. **Untitled**\n")

	rec.Items = nil
	assert.Contains(t, Recommendation(cfg, rec), "nothing for Comedy")
}

func TestTableMarkdown(t *testing.T) {
	cfg := quiz.Default()
	md := Table(cfg)
	for _, q := range cfg.Questions {
		assert.Contains(t, md, "`"+q.ID+"`")
	}
	assert.Contains(t, md, "**Drama** (default)")
	assert.Contains(t, md, "| Question | Choice | Label | Weight |")
}

func TestRender(t *testing.T) {
	out, err := Render("# Hello\n\nworld", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "world")
}
