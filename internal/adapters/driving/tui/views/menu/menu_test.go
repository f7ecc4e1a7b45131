package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Equal(t, 0, view.Selected())
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)

	wantItems := []struct {
		label string
		view  messages.ViewType
		quit  bool
	}{
		{"Query", messages.ViewQuery, false},
		{"Handles", messages.ViewHandles, false},
		{"Stats", messages.ViewStats, false},
		{"Help", messages.ViewHelp, false},
		{"Quit", 0, true},
	}
	require.Len(t, view.items, len(wantItems))
	for i, want := range wantItems {
		assert.Equal(t, want.label, view.items[i].Label)
		assert.Equal(t, want.quit, view.items[i].Quit)
		assert.NotEmpty(t, view.items[i].Desc)
		if !want.quit {
			assert.Equal(t, want.view, view.items[i].View)
		}
	}
}

func TestNewView_NilStylesUsesDefaults(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Init(t *testing.T) {
	assert.Nil(t, NewView(nil).Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(nil)
	last := len(view.items) - 1

	// Walk to the bottom with a mix of arrow and vi keys; the cursor
	// clamps at the last item.
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())
	for i := 0; i < 10; i++ {
		view.Update(keyRune('j'))
	}
	assert.Equal(t, last, view.Selected())

	// And back up, clamping at the first.
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, last-1, view.Selected())
	for i := 0; i < 10; i++ {
		view.Update(keyRune('k'))
	}
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_EnterSwitchesView(t *testing.T) {
	targets := map[int]messages.ViewType{
		0: messages.ViewQuery,
		1: messages.ViewHandles,
		2: messages.ViewStats,
		3: messages.ViewHelp,
	}

	for index, want := range targets {
		view := NewView(nil)
		view.selected = index

		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

		require.NotNil(t, cmd, "item %d", index)
		changed, ok := cmd().(messages.ViewChanged)
		require.True(t, ok, "item %d", index)
		assert.Equal(t, want, changed.View)
	}
}

func TestView_Update_EnterOnQuitItem(t *testing.T) {
	view := NewView(nil)
	view.selected = len(view.items) - 1

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
}

func TestView_Update_QKeyQuits(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(keyRune('q'))

	require.NotNil(t, cmd)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil)

	assert.Contains(t, view.View(), "Initialising")
}

func TestView_View_Ready(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "Memora")
	assert.Contains(t, output, "Local Vector Memory")
	for _, item := range view.items {
		assert.Contains(t, output, item.Label)
	}
	assert.Contains(t, output, ">")
	// The selected entry's description shows under the list.
	assert.Contains(t, output, view.items[0].Desc)
}

func TestView_View_DescriptionFollowsSelection(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	view.Update(keyRune('j'))

	assert.Contains(t, view.View(), view.items[1].Desc)
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(nil)

	view.SetDimensions(120, 60)

	assert.Equal(t, 120, view.width)
	assert.Equal(t, 60, view.height)
	assert.True(t, view.ready)
}
