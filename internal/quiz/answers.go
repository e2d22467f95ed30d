package quiz

import (
	"fmt"
	"strings"
)

// AnswerSet maps question IDs to the chosen choice text. A question with no
// entry is unanswered. The zero value is an empty set.
//
// AnswerSet is a value: With returns a modified copy and never mutates the
// receiver, so a set handed to Classify cannot change underneath it.
type AnswerSet struct {
	choices map[string]string
}

// NewAnswerSet returns an empty answer set.
func NewAnswerSet() AnswerSet {
	return AnswerSet{}
}

// AnswersFrom builds an answer set from a plain map. Empty values count as
// unanswered.
func AnswersFrom(m map[string]string) AnswerSet {
	a := AnswerSet{choices: make(map[string]string, len(m))}
	for id, choice := range m {
		if choice != "" {
			a.choices[id] = choice
		}
	}
	return a
}

// With returns a copy of a with questionID answered by choice. An empty
// choice clears the answer.
func (a AnswerSet) With(questionID, choice string) AnswerSet {
	next := make(map[string]string, len(a.choices)+1)
	for k, v := range a.choices {
		next[k] = v
	}
	if choice == "" {
		delete(next, questionID)
	} else {
		next[questionID] = choice
	}
	return AnswerSet{choices: next}
}

// Choice returns the answer for questionID, if any.
func (a AnswerSet) Choice(questionID string) (string, bool) {
	c, ok := a.choices[questionID]
	return c, ok
}

// Len returns the number of answered questions.
func (a AnswerSet) Len() int {
	return len(a.choices)
}

// Map returns a copy of the answers as a plain map.
func (a AnswerSet) Map() map[string]string {
	out := make(map[string]string, len(a.choices))
	for k, v := range a.choices {
		out[k] = v
	}
	return out
}

// MissingAnswersError reports every configured question that has no answer.
type MissingAnswersError struct {
	QuestionIDs []string
}

func (e *MissingAnswersError) Error() string {
	return fmt.Sprintf("missing answers for %d question(s): %s",
		len(e.QuestionIDs), strings.Join(e.QuestionIDs, ", "))
}

// Missing returns the IDs of unanswered questions in question order.
func (c *Config) Missing(a AnswerSet) []string {
	var missing []string
	for _, q := range c.Questions {
		if _, ok := a.Choice(q.ID); !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// IsComplete reports whether every configured question is answered.
func (c *Config) IsComplete(a AnswerSet) bool {
	return len(c.Missing(a)) == 0
}

// ValidateAnswers returns *MissingAnswersError when a is incomplete.
func (c *Config) ValidateAnswers(a AnswerSet) error {
	if missing := c.Missing(a); len(missing) > 0 {
		return &MissingAnswersError{QuestionIDs: missing}
	}
	return nil
}

// CheckChoice reports whether choice is declared for questionID. Callers
// that accept answers from outside the process use it before building an
// AnswerSet; the scorer itself assumes declared choices.
func (c *Config) CheckChoice(questionID, choice string) error {
	q, ok := c.Question(questionID)
	if !ok {
		return fmt.Errorf("unknown question %q", questionID)
	}
	if _, ok := q.CategoryOf(choice); !ok {
		return fmt.Errorf("question %q has no choice %q (valid: %s)",
			questionID, choice, strings.Join(q.ChoiceTexts(), " | "))
	}
	return nil
}
