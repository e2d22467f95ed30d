package pitch

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/llm"
	"github.com/abhisek/cinematch/internal/quiz"
)

func mysteryResult(t *testing.T) (*quiz.Config, quiz.Result) {
	t.Helper()
	cfg := quiz.Default()
	e, err := quiz.NewEngine(cfg)
	require.NoError(t, err)

	a := quiz.NewAnswerSet()
	for _, q := range cfg.Questions {
		for _, c := range q.Choices {
			if c.Category == quiz.CategoryReflective {
				a = a.With(q.ID, c.Text)
			}
		}
	}
	res, err := e.Classify(a)
	require.NoError(t, err)
	require.Equal(t, quiz.LabelMystery, res.Label)
	return cfg, res
}

var testItems = []catalog.Item{
	{ID: 11, Title: "Knives Out", Overview: "A detective investigates a death.", Rating: 7.8, VoteCount: 1200, ReleaseDate: "2019-11-27"},
	{ID: 12, Title: "Zodiac", Overview: "A killer taunts the press.", Rating: 7.5, VoteCount: 800},
}

func TestTemplateWriter(t *testing.T) {
	cfg, res := mysteryResult(t)
	pitches, err := NewTemplateWriter(cfg).Write(context.Background(), res, testItems)
	require.NoError(t, err)
	require.Len(t, pitches, 2)

	assert.Equal(t, 11, pitches[0].ItemID)
	assert.Equal(t, SourceTemplate, pitches[0].Source)
	assert.True(t, strings.HasPrefix(pitches[0].Text, "Knives Out (2019) is a Mystery pick rated 7.8/10"), pitches[0].Text)
	assert.Contains(t, pitches[0].Text, strings.TrimSpace(cfg.Labels[quiz.LabelMystery].Reason))
	assert.True(t, strings.HasPrefix(pitches[1].Text, "Zodiac is a Mystery pick"), pitches[1].Text)

	again, _ := NewTemplateWriter(cfg).Write(context.Background(), res, testItems)
	assert.Equal(t, pitches, again)
}

func TestTemplateWriter_Unrated(t *testing.T) {
	cfg, res := mysteryResult(t)
	pitches, _ := NewTemplateWriter(cfg).Write(context.Background(), res, []catalog.Item{{ID: 1, Title: "New Film"}})
	assert.NotContains(t, pitches[0].Text, "rated")
}

func TestLLMWriter_UsesModelOutput(t *testing.T) {
	cfg, res := mysteryResult(t)
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"pitches":[{"id":11,"pitch":"A whodunit full of sly turns."}]}`),
	})

	pitches, err := NewLLMWriter(mock, cfg, DefaultConfig()).Write(context.Background(), res, testItems)
	require.NoError(t, err)
	require.Len(t, pitches, 2)

	assert.Equal(t, Pitch{ItemID: 11, Text: "A whodunit full of sly turns.", Source: SourceLLM}, pitches[0])
	assert.Equal(t, SourceTemplate, pitches[1].Source, "uncovered item falls back to the template")

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, "movie-pitches", call.Schema.Name)
	assert.Contains(t, call.Messages[0].Content, "id 11: Knives Out (2019)")
	assert.Contains(t, call.Messages[0].Content, "Genre: Mystery")
}

func TestLLMWriter_FallsBackOnError(t *testing.T) {
	cfg, res := mysteryResult(t)
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"unparseable", llm.MockResponse{Content: json.RawMessage(`"just text"`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			pitches, err := NewLLMWriter(mock, cfg, DefaultConfig()).Write(context.Background(), res, testItems)
			require.NoError(t, err)
			want, _ := NewTemplateWriter(cfg).Write(context.Background(), res, testItems)
			assert.Equal(t, want, pitches)
		})
	}
}

func TestLLMWriter_NoItemsSkipsModel(t *testing.T) {
	cfg, res := mysteryResult(t)
	mock := llm.NewMockProvider()
	pitches, err := NewLLMWriter(mock, cfg, DefaultConfig()).Write(context.Background(), res, nil)
	require.NoError(t, err)
	assert.Empty(t, pitches)
	assert.Equal(t, 0, mock.CallCount())
}

func TestLLMWriter_ContextCanceled(t *testing.T) {
	cfg, res := mysteryResult(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider(llm.MockResponse{Err: context.Canceled})
	_, err := NewLLMWriter(mock, cfg, DefaultConfig()).Write(ctx, res, testItems)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 2))
}
