package pitch

import (
	"context"
	"encoding/json"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/llm"
	"github.com/abhisek/cinematch/internal/logging"
	"github.com/abhisek/cinematch/internal/quiz"
)

// Purpose tags pitch requests in the LLM event log.
const Purpose = "pitch"

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns defaults for pitch generation.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, Temperature: 0.6}
}

// LLMWriter asks a model for pitches and falls back to the template for
// any item the model fails to cover.
type LLMWriter struct {
	provider llm.Provider
	cfg      *quiz.Config
	gen      Config
	fallback *TemplateWriter
}

var _ Writer = (*LLMWriter)(nil)

// NewLLMWriter creates a writer backed by provider.
func NewLLMWriter(provider llm.Provider, cfg *quiz.Config, gen Config) *LLMWriter {
	return &LLMWriter{
		provider: provider,
		cfg:      cfg,
		gen:      gen,
		fallback: NewTemplateWriter(cfg),
	}
}

type pitchesOutput struct {
	Pitches []struct {
		ID    int    `json:"id"`
		Pitch string `json:"pitch"`
	} `json:"pitches"`
}

// Write never fails because of the model. It returns an error only when
// ctx is done.
func (w *LLMWriter) Write(ctx context.Context, res quiz.Result, items []catalog.Item) ([]Pitch, error) {
	out, _ := w.fallback.Write(ctx, res, items)
	if len(items) == 0 {
		return out, nil
	}

	generated, err := w.generate(ctx, res, items)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Warn().Err(err).Msg("pitch generation failed, using templates")
		return out, nil
	}

	for i, item := range items {
		if text, ok := generated[item.ID]; ok {
			out[i] = Pitch{ItemID: item.ID, Text: text, Source: SourceLLM}
		}
	}
	return out, nil
}

func (w *LLMWriter) generate(ctx context.Context, res quiz.Result, items []catalog.Item) (map[int]string, error) {
	req := llm.UserPrompt(systemPrompt, buildUserMessage(w.cfg, res, items))
	req.Schema = Schema
	req.MaxTokens = w.gen.MaxTokens
	req.Temperature = w.gen.Temperature

	resp, err := w.provider.Generate(llm.WithPurpose(ctx, Purpose), req)
	if err != nil {
		return nil, err
	}

	var parsed pitchesOutput
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}

	byID := make(map[int]string, len(parsed.Pitches))
	for _, p := range parsed.Pitches {
		if p.Pitch != "" {
			byID[p.ID] = p.Pitch
		}
	}
	return byID, nil
}
