package quiz

import "strings"

// Reason joins the category sentence with the label sentence. The text
// depends only on (cat, label), never on vote counts.
func (e *Engine) Reason(cat Category, label Label) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(e.cfg.Categories[cat].Reason); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(e.cfg.Labels[label].Reason); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
