// Package pitch writes the one-line justification shown next to each
// recommended movie.
package pitch

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/quiz"
)

// Source says how a pitch was produced.
type Source string

const (
	SourceTemplate Source = "template"
	SourceLLM      Source = "llm"
)

// Pitch is the justification for one catalog item.
type Pitch struct {
	ItemID int    `json:"item_id"`
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// Writer produces one pitch per item, in item order.
type Writer interface {
	Write(ctx context.Context, res quiz.Result, items []catalog.Item) ([]Pitch, error)
}

// TemplateWriter builds deterministic pitches from the quiz table's names
// and reason sentences.
type TemplateWriter struct {
	cfg *quiz.Config
}

var _ Writer = (*TemplateWriter)(nil)

// NewTemplateWriter creates a writer using cfg for label names and reasons.
func NewTemplateWriter(cfg *quiz.Config) *TemplateWriter {
	return &TemplateWriter{cfg: cfg}
}

func (w *TemplateWriter) Write(_ context.Context, res quiz.Result, items []catalog.Item) ([]Pitch, error) {
	out := make([]Pitch, len(items))
	for i, item := range items {
		out[i] = w.pitch(res, item)
	}
	return out, nil
}

func (w *TemplateWriter) pitch(res quiz.Result, item catalog.Item) Pitch {
	var b strings.Builder
	b.WriteString(item.Title)
	if y := item.Year(); y != "" {
		fmt.Fprintf(&b, " (%s)", y)
	}
	fmt.Fprintf(&b, " is a %s pick", w.cfg.LabelName(res.Label))
	if item.VoteCount > 0 {
		fmt.Fprintf(&b, " rated %.1f/10 by %d viewers", item.Rating, item.VoteCount)
	}
	b.WriteString(". ")
	b.WriteString(strings.TrimSpace(w.cfg.Labels[res.Label].Reason))

	return Pitch{ItemID: item.ID, Text: b.String(), Source: SourceTemplate}
}
