package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoiceKeys(t *testing.T) {
	m := NewMultiChoice("Pick one", []string{"w", "x", "y", "z"}, -1)
	assert.False(t, m.HasChoice())

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 2, m.Chosen)

	m, _ = m.Update(press('D'))
	assert.Equal(t, 3, m.Chosen)
	assert.Equal(t, 3, m.Cursor)

	m, _ = m.Update(press('a'))
	assert.Equal(t, 0, m.Chosen)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor, "cursor stays on the first option")
}

func TestMultiChoiceRestoresPrevious(t *testing.T) {
	m := NewMultiChoice("q", []string{"a", "b"}, 1)
	assert.Equal(t, 1, m.Cursor)
	assert.True(t, m.HasChoice())

	m = NewMultiChoice("q", []string{"a", "b"}, 7)
	assert.Equal(t, -1, m.Chosen)
	assert.Contains(t, m.View(), "B)  b")
}

func TestMenuSkipsDisabled(t *testing.T) {
	var fired string
	m := NewMenu([]MenuItem{
		{Label: "one", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { fired = "two"; return nil }},
		{Label: "three", Disabled: true},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "two", fired)
	assert.Equal(t, []string{"one", "two", "three"}, m.Labels())
}

func TestProgressBarWidth(t *testing.T) {
	bar := ProgressBar{Percent: 0.5, Width: 20}
	assert.Equal(t, 20, len([]rune(stripANSI(bar.View()))))

	assert.Equal(t, " 40%", PercentSuffix(0.4))
	assert.Equal(t, "100%", PercentSuffix(1))
}

func TestTextInputMasks(t *testing.T) {
	ti := NewTextInput("key", true, 20)
	for _, r := range "abc" {
		ti, _ = ti.Update(press(r))
	}
	assert.Equal(t, "abc", ti.Value())
	assert.NotContains(t, ti.View(), "abc")
}

// stripANSI removes CSI escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
