package quiz

import "fmt"

// Category is one of the four coarse temperaments a quiz answer votes for.
type Category string

const (
	CategoryHeartfelt   Category = "heartfelt"
	CategoryCheerful    Category = "cheerful"
	CategoryAdventurous Category = "adventurous"
	CategoryReflective  Category = "reflective"
)

// Label is a specific genre produced by refining a Category.
type Label string

const (
	LabelDrama   Label = "drama"
	LabelRomance Label = "romance"
	LabelComedy  Label = "comedy"
	LabelAction  Label = "action"
	LabelSciFi   Label = "sci-fi"
	LabelMystery Label = "mystery"
)

// ChoicesPerQuestion is the fixed number of choices every question offers.
const ChoicesPerQuestion = 4

// Question is a single multiple-choice prompt. Each choice votes for
// exactly one category.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Choices []Choice `yaml:"choices" json:"choices"`
}

// Choice is one answer option and the category it votes for.
type Choice struct {
	Text     string   `yaml:"text" json:"text"`
	Category Category `yaml:"category" json:"category"`
}

// CategoryOf returns the category the given choice text votes for.
func (q Question) CategoryOf(choice string) (Category, bool) {
	for _, c := range q.Choices {
		if c.Text == choice {
			return c.Category, true
		}
	}
	return "", false
}

// ChoiceTexts returns the choice labels in display order.
func (q Question) ChoiceTexts() []string {
	out := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		out[i] = c.Text
	}
	return out
}

// HintRule adds Weight toward Label when the answer to QuestionID is Choice.
type HintRule struct {
	QuestionID string `yaml:"question" json:"question"`
	Choice     string `yaml:"choice" json:"choice"`
	Label      Label  `yaml:"label" json:"label"`
	Weight     int    `yaml:"weight" json:"weight"`
}

// CategorySpec describes how a category is explained and refined.
// A category with a single label needs no Default or Hints.
type CategorySpec struct {
	Name    string     `yaml:"name" json:"name"`
	Reason  string     `yaml:"reason" json:"reason"`
	Labels  []Label    `yaml:"labels" json:"labels"`
	Default Label      `yaml:"default,omitempty" json:"default,omitempty"`
	Hints   []HintRule `yaml:"hints,omitempty" json:"hints,omitempty"`
}

// Compound reports whether the category refines into more than one label.
func (s CategorySpec) Compound() bool {
	return len(s.Labels) > 1
}

// HasLabel reports whether l is one of the category's labels.
func (s CategorySpec) HasLabel(l Label) bool {
	for _, x := range s.Labels {
		if x == l {
			return true
		}
	}
	return false
}

// LabelSpec holds display data for a specific label.
type LabelSpec struct {
	Name   string `yaml:"name" json:"name"`
	Reason string `yaml:"reason" json:"reason"`
}

// Tally counts votes per category.
type Tally map[Category]int

// Total returns the sum of all counts.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Result is the outcome of classifying a complete answer set.
type Result struct {
	Category Category      `json:"category"`
	Label    Label         `json:"label"`
	Reason   string        `json:"reason"`
	Tally    Tally         `json:"tally"`
	Weights  map[Label]int `json:"hint_weights,omitempty"`
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return fmt.Sprintf("%s/%s", r.Category, r.Label)
}
