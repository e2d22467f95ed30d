package quiz

import "fmt"

// Engine classifies answer sets against a validated Config. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	cfg *Config
}

// NewEngine validates cfg and returns an Engine bound to it.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("quiz config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quiz config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the table the engine was built from. Callers must not
// modify it.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Classify scores a, refines the winning category and attaches the reason.
// An incomplete set returns *MissingAnswersError and no partial result.
func (e *Engine) Classify(a AnswerSet) (Result, error) {
	if err := e.cfg.ValidateAnswers(a); err != nil {
		return Result{}, err
	}

	cat, tally := e.Score(a)
	label, weights := e.refine(cat, a)

	return Result{
		Category: cat,
		Label:    label,
		Reason:   e.Reason(cat, label),
		Tally:    tally,
		Weights:  weights,
	}, nil
}
