// Package report formats quiz tables and results as Markdown for the CLI.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/session"
)

// DefaultWordWrap is the wrap width used by Render.
const DefaultWordWrap = 80

// Render draws markdown for a terminal. wrap <= 0 uses DefaultWordWrap.
func Render(md string, wrap int) (string, error) {
	if wrap <= 0 {
		wrap = DefaultWordWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Result describes a classification: verdict, reason and tally.
func Result(cfg *quiz.Config, res quiz.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cfg.LabelName(res.Label))
	fmt.Fprintf(&b, "**Mood:** %s\n\n", cfg.CategoryName(res.Category))
	fmt.Fprintf(&b, "%s\n\n", res.Reason)

	b.WriteString("| Mood | Votes | Share |\n|---|---:|---:|\n")
	for _, row := range session.TallyRows(cfg, res) {
		name := row.Name
		if row.Winner {
			name = "**" + name + "**"
		}
		fmt.Fprintf(&b, "| %s | %d | %.0f%% |\n", name, row.Votes, row.Share*100)
	}
	return b.String()
}

// Recommendation appends the candidates and their pitches to Result.
func Recommendation(cfg *quiz.Config, rec *session.Recommendation) string {
	var b strings.Builder
	b.WriteString(Result(cfg, rec.Result))
	b.WriteString("\n## Tonight's picks\n\n")

	if len(rec.Items) == 0 {
		fmt.Fprintf(&b, "_The catalog has nothing for %s right now._\n", cfg.LabelName(rec.Result.Label))
		return b.String()
	}
	for i, item := range rec.Items {
		fmt.Fprintf(&b, "%d. **%s**", i+1, itemTitle(item))
		if item.Rating > 0 {
			fmt.Fprintf(&b, " ★ %.1f", item.Rating)
		}
		b.WriteString("\n")
		if p := rec.PitchFor(item.ID); p != "" {
			fmt.Fprintf(&b, "   %s\n", p)
		}
	}
	return b.String()
}

func itemTitle(item catalog.Item) string {
	if y := item.Year(); y != "" {
		return fmt.Sprintf("%s (%s)", item.Title, y)
	}
	return item.Title
}

// Table lists the questions with their choices, and the categories with
// their labels and refinement hints.
func Table(cfg *quiz.Config) string {
	var b strings.Builder
	b.WriteString("# Questions\n\n")
	for i, q := range cfg.Questions {
		fmt.Fprintf(&b, "%d. **%s** `%s`\n", i+1, q.Prompt, q.ID)
		for _, c := range q.Choices {
			fmt.Fprintf(&b, "   - %s → %s\n", c.Text, cfg.CategoryName(c.Category))
		}
	}

	b.WriteString("\n# Moods\n\nTies go to the mood listed first.\n\n")
	for _, cat := range cfg.Priority {
		spec := cfg.Categories[cat]
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", cfg.CategoryName(cat), spec.Reason)
		for _, l := range spec.Labels {
			suffix := ""
			if spec.Compound() && l == spec.Default {
				suffix = " (default)"
			}
			fmt.Fprintf(&b, "- **%s**%s: %s\n", cfg.LabelName(l), suffix, cfg.Labels[l].Reason)
		}
		if len(spec.Hints) > 0 {
			b.WriteString("\n| Question | Choice | Label | Weight |\n|---|---|---|---:|\n")
			for _, h := range spec.Hints {
				fmt.Fprintf(&b, "| `%s` | %s | %s | %d |\n", h.QuestionID, h.Choice, cfg.LabelName(h.Label), h.Weight)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
