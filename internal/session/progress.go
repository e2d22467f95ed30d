package session

// Progress reports how far through the quiz a run is.
type Progress struct {
	Answered int
	Total    int
}

// Progress returns the answered count against the table size.
func (s *State) Progress() Progress {
	total := len(s.Config.Questions)
	return Progress{Answered: total - len(s.Config.Missing(s.Answers)), Total: total}
}

// Fraction returns Answered/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total)
}

// Complete reports whether every question has an answer.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Answered == p.Total
}
