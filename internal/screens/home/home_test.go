package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/router"
	"github.com/abhisek/cinematch/internal/screens/deps"
)

func newHome(t *testing.T) *HomeScreen {
	t.Helper()
	e, err := quiz.NewEngine(quiz.Default())
	require.NoError(t, err)
	return New(&deps.Deps{Engine: e})
}

func TestEnterPushesQuiz(t *testing.T) {
	h := newHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)

	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Quiz", push.Screen.Title())
}

func TestExitQuits(t *testing.T) {
	h := newHome(t)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewListsMenu(t *testing.T) {
	view := newHome(t).View(100, 40)
	for _, l := range menuLabels {
		assert.Contains(t, view, l)
	}
}
