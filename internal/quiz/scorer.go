package quiz

import "fmt"

// Score tallies one vote per question and picks the winning category.
// The highest count wins; ties go to the category listed first in the
// priority order, so map iteration order never matters.
//
// a must be complete and contain only declared choices. Both are caller
// guarantees, and violating them panics.
func (e *Engine) Score(a AnswerSet) (Category, Tally) {
	tally := make(Tally, len(e.cfg.Priority))
	for _, cat := range e.cfg.Priority {
		tally[cat] = 0
	}

	for _, q := range e.cfg.Questions {
		choice, ok := a.Choice(q.ID)
		if !ok {
			panic(fmt.Sprintf("quiz: score called with unanswered question %q", q.ID))
		}
		cat, ok := q.CategoryOf(choice)
		if !ok {
			panic(fmt.Sprintf("quiz: question %q has no choice %q", q.ID, choice))
		}
		tally[cat]++
	}

	return e.winner(tally), tally
}

func (e *Engine) winner(t Tally) Category {
	var best Category
	bestCount := -1
	for _, cat := range e.cfg.Priority {
		if t[cat] > bestCount {
			best, bestCount = cat, t[cat]
		}
	}
	return best
}
