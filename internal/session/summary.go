package session

import "github.com/abhisek/cinematch/internal/quiz"

// TallyRow is one category's share of the votes, for display.
type TallyRow struct {
	Category quiz.Category
	Name     string
	Votes    int
	Share    float64
	Winner   bool
}

// TallyRows lists the tally in priority order so ties read the way they
// were broken.
func TallyRows(cfg *quiz.Config, res quiz.Result) []TallyRow {
	total := res.Tally.Total()
	rows := make([]TallyRow, 0, len(cfg.Priority))
	for _, cat := range cfg.Priority {
		votes := res.Tally[cat]
		var share float64
		if total > 0 {
			share = float64(votes) / float64(total)
		}
		rows = append(rows, TallyRow{
			Category: cat,
			Name:     cfg.CategoryName(cat),
			Votes:    votes,
			Share:    share,
			Winner:   cat == res.Category,
		})
	}
	return rows
}
