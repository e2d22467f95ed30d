// Package screen defines the contract between the router and each view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cinematch/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a short status on the
// right of the header, such as quiz progress.
type StatusProvider interface {
	Status() string
}

// InputCapturer is implemented by screens that take free text input. While
// Capturing reports true the app does not treat plain keys as shortcuts.
type InputCapturer interface {
	Capturing() bool
}
