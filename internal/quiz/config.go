package quiz

import (
	"errors"
	"fmt"
)

// NumCategories is the size of the closed category set.
const NumCategories = 4

// Config is the static quiz table: questions, category priority, refinement
// rules and reason sentences. It is loaded once and never mutated.
type Config struct {
	// Priority lists every category once. Earlier entries win vote ties.
	Priority   []Category                `yaml:"priority" json:"priority"`
	Categories map[Category]CategorySpec `yaml:"categories" json:"categories"`
	Labels     map[Label]LabelSpec       `yaml:"labels" json:"labels"`
	Questions  []Question                `yaml:"questions" json:"questions"`
}

// Question returns the question with the given ID.
func (c *Config) Question(id string) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// LabelName returns the display name of l, falling back to the raw label.
func (c *Config) LabelName(l Label) string {
	if s, ok := c.Labels[l]; ok && s.Name != "" {
		return s.Name
	}
	return string(l)
}

// CategoryName returns the display name of cat, falling back to the raw value.
func (c *Config) CategoryName(cat Category) string {
	if s, ok := c.Categories[cat]; ok && s.Name != "" {
		return s.Name
	}
	return string(cat)
}

// AllLabels returns every label in priority order of its category.
func (c *Config) AllLabels() []Label {
	var out []Label
	for _, cat := range c.Priority {
		out = append(out, c.Categories[cat].Labels...)
	}
	return out
}

// Validate checks referential integrity of the table. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(c.Priority) != NumCategories {
		add("priority must list exactly %d categories, got %d", NumCategories, len(c.Priority))
	}
	seenCat := make(map[Category]bool, len(c.Priority))
	for _, cat := range c.Priority {
		if seenCat[cat] {
			add("priority lists %q more than once", cat)
		}
		seenCat[cat] = true
		if _, ok := c.Categories[cat]; !ok {
			add("priority lists undeclared category %q", cat)
		}
	}
	for cat := range c.Categories {
		if !seenCat[cat] {
			add("category %q is missing from priority", cat)
		}
	}

	if len(c.Questions) == 0 {
		add("at least one question is required")
	}
	seenQ := make(map[string]bool, len(c.Questions))
	for _, q := range c.Questions {
		if q.ID == "" {
			add("question with prompt %q has no id", q.Prompt)
			continue
		}
		if seenQ[q.ID] {
			add("duplicate question id %q", q.ID)
		}
		seenQ[q.ID] = true
		if len(q.Choices) != ChoicesPerQuestion {
			add("question %q must have %d choices, got %d", q.ID, ChoicesPerQuestion, len(q.Choices))
		}
		seenChoice := make(map[string]bool, len(q.Choices))
		for _, ch := range q.Choices {
			if ch.Text == "" {
				add("question %q has an empty choice", q.ID)
			}
			if seenChoice[ch.Text] {
				add("question %q repeats choice %q", q.ID, ch.Text)
			}
			seenChoice[ch.Text] = true
			if !seenCat[ch.Category] {
				add("question %q choice %q maps to unknown category %q", q.ID, ch.Text, ch.Category)
			}
		}
	}

	owner := make(map[Label]Category)
	for _, cat := range c.Priority {
		spec, ok := c.Categories[cat]
		if !ok {
			continue
		}
		if spec.Reason == "" {
			add("category %q has no reason sentence", cat)
		}
		switch n := len(spec.Labels); {
		case n == 0:
			add("category %q has no labels", cat)
		case n > 2:
			add("category %q has %d labels, at most 2 allowed", cat, n)
		}
		for _, l := range spec.Labels {
			if prev, dup := owner[l]; dup {
				add("label %q belongs to both %q and %q", l, prev, cat)
			}
			owner[l] = cat
			ls, ok := c.Labels[l]
			if !ok {
				add("label %q of category %q is not declared", l, cat)
			} else if ls.Reason == "" {
				add("label %q has no reason sentence", l)
			}
		}
		if spec.Compound() {
			if !spec.HasLabel(spec.Default) {
				add("category %q default %q is not one of its labels", cat, spec.Default)
			}
		} else if len(spec.Hints) > 0 {
			add("category %q has a single label and cannot declare hints", cat)
		}
		for i, h := range spec.Hints {
			if h.Weight <= 0 {
				add("category %q hint %d has non-positive weight %d", cat, i, h.Weight)
			}
			if !spec.HasLabel(h.Label) {
				add("category %q hint %d targets foreign label %q", cat, i, h.Label)
			}
			q, ok := c.Question(h.QuestionID)
			if !ok {
				add("category %q hint %d references unknown question %q", cat, i, h.QuestionID)
				continue
			}
			if _, ok := q.CategoryOf(h.Choice); !ok {
				add("category %q hint %d references undeclared choice %q of %q", cat, i, h.Choice, h.QuestionID)
			}
		}
	}

	return errors.Join(errs...)
}
