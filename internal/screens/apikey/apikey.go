// Package apikey asks for a TMDB API key when none is configured.
package apikey

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinematch/internal/router"
	"github.com/abhisek/cinematch/internal/screen"
	"github.com/abhisek/cinematch/internal/screens/deps"
	"github.com/abhisek/cinematch/internal/ui/components"
	"github.com/abhisek/cinematch/internal/ui/layout"
	"github.com/abhisek/cinematch/internal/ui/theme"
)

const inputWidth = 40

// KeyScreen takes a masked key and then replaces itself with the screen
// built by next. Submitting an empty value skips the catalog.
type KeyScreen struct {
	deps  *deps.Deps
	next  func() screen.Screen
	input components.TextInput
	done  bool
}

var (
	_ screen.Screen        = (*KeyScreen)(nil)
	_ screen.InputCapturer = (*KeyScreen)(nil)
)

// New creates the key prompt.
func New(d *deps.Deps, next func() screen.Screen) *KeyScreen {
	return &KeyScreen{
		deps:  d,
		next:  next,
		input: components.NewTextInput("TMDB API key", true, inputWidth),
	}
}

func (k *KeyScreen) Init() tea.Cmd {
	return k.input.Init()
}

func (k *KeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return k, k.finish(strings.TrimSpace(k.input.Value()))
	}

	var cmd tea.Cmd
	k.input, cmd = k.input.Update(msg)
	return k, cmd
}

func (k *KeyScreen) finish(key string) tea.Cmd {
	if k.done {
		return nil
	}
	k.done = true
	k.deps.SetAPIKey(key)
	next := k.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (k *KeyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	heading := theme.Title.Render("One more thing")
	body := lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Render("Movie suggestions come from The Movie Database. Paste your TMDB API key " +
			"to see them, or press Enter on an empty field to only see your genre.")
	note := theme.Hint.Render("The key is kept for this run only.")

	content := strings.Join([]string{heading, body, k.input.View(), note}, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (k *KeyScreen) Title() string {
	return "TMDB Key"
}

// Capturing reports true so typed letters reach the input.
func (k *KeyScreen) Capturing() bool {
	return true
}

func (k *KeyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}
