// Package session runs a quiz from first answer to recommendations. It is
// shared by the terminal UI, the CLI and the HTTP server.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/logging"
	"github.com/abhisek/cinematch/internal/metrics"
	"github.com/abhisek/cinematch/internal/pitch"
	"github.com/abhisek/cinematch/internal/quiz"
)

// DefaultLimit is the number of candidates requested when none is given.
const DefaultLimit = 5

// MaxLimit caps a single catalog request.
const MaxLimit = 20

// Classify runs the engine over a and records the outcome in metrics.
func Classify(e *quiz.Engine, a quiz.AnswerSet) (quiz.Result, error) {
	res, err := e.Classify(a)
	if err != nil {
		var missing *quiz.MissingAnswersError
		if errors.As(err, &missing) {
			metrics.MissingAnswers.Inc()
		}
		return quiz.Result{}, err
	}
	metrics.Classifications.WithLabelValues(string(res.Category), string(res.Label)).Inc()
	return res, nil
}

// Submit classifies the run. With answers missing, the state moves to
// PhaseWarning and the *quiz.MissingAnswersError is returned; the answer
// set is left untouched so the user can finish it.
func Submit(s *State, e *quiz.Engine) (*quiz.Result, error) {
	res, err := Classify(e, s.Answers)
	if err != nil {
		var missing *quiz.MissingAnswersError
		if errors.As(err, &missing) {
			s.Phase = PhaseWarning
			s.Missing = missing.QuestionIDs
		}
		return nil, err
	}
	s.Phase = PhaseClassified
	s.Missing = nil
	s.Result = &res
	logging.Debug().Str("session", s.ID).Str("result", res.String()).Msg("quiz classified")
	return &res, nil
}

// Recommendation is a classification plus the catalog candidates for its
// label and one pitch per candidate.
type Recommendation struct {
	SessionID string         `json:"session_id"`
	Result    quiz.Result    `json:"result"`
	Items     []catalog.Item `json:"items"`
	Pitches   []pitch.Pitch  `json:"pitches"`
}

// Recommender fetches candidates and pitches them.
type Recommender struct {
	fetcher catalog.Fetcher
	writer  pitch.Writer
}

// NewRecommender wires a fetcher and a pitch writer.
func NewRecommender(f catalog.Fetcher, w pitch.Writer) *Recommender {
	return &Recommender{fetcher: f, writer: w}
}

// Recommend fetches up to limit candidates for res.Label. limit <= 0 uses
// DefaultLimit; larger than MaxLimit is clamped. Catalog errors are returned
// unwrapped so callers can branch on catalog.KindOf.
func (r *Recommender) Recommend(ctx context.Context, sessionID string, res quiz.Result, limit int) (*Recommendation, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	items, err := r.fetcher.FetchCandidates(ctx, res.Label, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []catalog.Item{}
	}

	pitches, err := r.writer.Write(ctx, res, items)
	if err != nil {
		return nil, fmt.Errorf("write pitches: %w", err)
	}

	return &Recommendation{
		SessionID: sessionID,
		Result:    res,
		Items:     items,
		Pitches:   pitches,
	}, nil
}

// PitchFor returns the pitch for item id, or "" when none was written.
func (r *Recommendation) PitchFor(id int) string {
	for _, p := range r.Pitches {
		if p.ItemID == id {
			return p.Text
		}
	}
	return ""
}
