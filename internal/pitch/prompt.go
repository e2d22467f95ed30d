package pitch

import (
	"fmt"
	"strings"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/quiz"
)

const systemPrompt = `You recommend movies to someone who just took a short personality quiz.
For every movie in the list, write one warm, specific sentence (at most 30 words) explaining
why it suits them. Refer to the movie's plot, not to the quiz. Never invent cast or awards.
Return one entry per movie id, and no others.`

func buildUserMessage(cfg *quiz.Config, res quiz.Result, items []catalog.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Temperament: %s\n", cfg.CategoryName(res.Category))
	fmt.Fprintf(&b, "Genre: %s\n", cfg.LabelName(res.Label))
	fmt.Fprintf(&b, "Why this genre: %s\n\nMovies:\n", res.Reason)
	for _, item := range items {
		fmt.Fprintf(&b, "- id %d: %s", item.ID, item.Title)
		if y := item.Year(); y != "" {
			fmt.Fprintf(&b, " (%s)", y)
		}
		if item.Overview != "" {
			fmt.Fprintf(&b, ". %s", truncate(item.Overview, 300))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
