package quiz

// Refine narrows a winning category to one of its labels.
//
// Single-label categories map straight through. For compound categories
// every hint rule whose (question, choice) matches a adds its weight to its
// label; the label with strictly the most weight wins and any tie at the top
// falls back to the category's Default.
func (e *Engine) Refine(cat Category, a AnswerSet) Label {
	label, _ := e.refine(cat, a)
	return label
}

func (e *Engine) refine(cat Category, a AnswerSet) (Label, map[Label]int) {
	spec := e.cfg.Categories[cat]
	if !spec.Compound() {
		if len(spec.Labels) == 0 {
			return "", nil
		}
		return spec.Labels[0], nil
	}

	weights := make(map[Label]int, len(spec.Labels))
	for _, l := range spec.Labels {
		weights[l] = 0
	}
	for _, h := range spec.Hints {
		if choice, ok := a.Choice(h.QuestionID); ok && choice == h.Choice {
			weights[h.Label] += h.Weight
		}
	}

	best := spec.Default
	top, tied := -1, false
	for _, l := range spec.Labels {
		switch w := weights[l]; {
		case w > top:
			best, top, tied = l, w, false
		case w == top:
			tied = true
		}
	}
	if tied {
		best = spec.Default
	}
	return best, weights
}
