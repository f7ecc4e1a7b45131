package content

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

func sampleExpanded() *domain.ExpandedDocument {
	return &domain.ExpandedDocument{
		Document: domain.Document{
			ID:            "doc-1",
			Text:          "First line of the stored note.\nSecond line with more detail.",
			TextHash:      "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2",
			EmbeddingKind: domain.EmbeddingKindDense,
		},
		Handle: domain.ContextHandle{
			ID:         "handle-1",
			DocumentID: "doc-1",
			Summary:    "Sprint planning recap",
			Importance: 0.75,
		},
	}
}

func longExpanded(lines int) *domain.ExpandedDocument {
	var sb strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}

	expanded := sampleExpanded()
	expanded.Document.Text = sb.String()
	return expanded
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()

	view := NewView(s)

	require.NotNil(t, view)
	assert.False(t, view.ready)
	assert.Nil(t, view.Expanded())
	assert.Equal(t, 80, view.viewport.Width)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil)

	assert.Nil(t, view.Init())
}

func TestView_SetExpanded(t *testing.T) {
	view := NewView(nil)
	view.err = errors.New("stale")

	view.SetExpanded(sampleExpanded())

	require.NotNil(t, view.Expanded())
	assert.Equal(t, "doc-1", view.Expanded().Document.ID)
	assert.NoError(t, view.Err())
}

func TestView_SetError(t *testing.T) {
	view := NewView(nil)

	view.SetError(errors.New("boom"))

	assert.Error(t, view.Err())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 76, view.viewport.Width)
	assert.Equal(t, 16, view.viewport.Height)
}

func TestView_Update_WindowSize_Minimums(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.WindowSizeMsg{Width: 10, Height: 5})

	assert.Equal(t, 20, view.viewport.Width)
	assert.Equal(t, 1, view.viewport.Height)
}

func TestView_Update_Esc_ReturnsToDetail(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg := cmd()
	changed, ok := msg.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewHandleDetail, changed.View)
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	view := NewView(nil)

	view.Update(messages.ErrorOccurred{Err: errors.New("expand failed")})

	assert.Error(t, view.Err())
}

func TestView_ScrollKeys(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 12)
	view.SetExpanded(longExpanded(40))

	assert.Equal(t, 0, view.viewport.YOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.viewport.YOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, view.viewport.YOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, view.viewport.YOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.viewport.YOffset)

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.True(t, view.viewport.AtBottom())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.True(t, view.viewport.AtTop())
}

func TestView_View_NoDocument(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "Document")
	assert.Contains(t, output, "(No document loaded)")
}

func TestView_View_WithDocument(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)
	view.SetExpanded(sampleExpanded())

	output := view.View()

	assert.Contains(t, output, "Sprint planning recap")
	assert.Contains(t, output, "hash: a1b2c3d4e5f6")
	assert.Contains(t, output, "kind: dense")
	assert.Contains(t, output, "importance: 0.75")
	assert.Contains(t, output, "First line of the stored note.")
	assert.Contains(t, output, "%]")
}

func TestView_View_EmptyText(t *testing.T) {
	expanded := sampleExpanded()
	expanded.Document.Text = ""

	view := NewView(nil)
	view.SetDimensions(80, 24)
	view.SetExpanded(expanded)

	output := view.View()

	assert.Contains(t, output, "(No content)")
}

func TestView_View_Error(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(80, 24)
	view.err = errors.New("expand failed")

	output := view.View()

	assert.Contains(t, output, "Error: expand failed")
}

func TestView_View_TitleFallsBackToDocumentID(t *testing.T) {
	expanded := sampleExpanded()
	expanded.Handle.Summary = ""

	view := NewView(nil)
	view.SetDimensions(80, 24)
	view.SetExpanded(expanded)

	output := view.View()

	assert.Contains(t, output, "doc-1")
}

func TestView_View_LongTitleTruncated(t *testing.T) {
	expanded := sampleExpanded()
	expanded.Handle.Summary = strings.Repeat("summary ", 20)

	view := NewView(nil)
	view.SetDimensions(80, 24)
	view.SetExpanded(expanded)

	output := view.View()

	assert.Contains(t, output, "...")
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "a1b2c3d4e5f6", shortHash("a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2"))
	assert.Equal(t, "abc", shortHash("abc"))
	assert.Equal(t, "", shortHash(""))
}

func TestWrapText(t *testing.T) {
	lines := wrapText("short", 40)
	assert.Equal(t, []string{"short"}, lines)

	long := "aaaaaaaaaabbbbbbbbbbccccccccccdddddddddd"
	lines = wrapText(long, 20)
	assert.Equal(t, []string{"aaaaaaaaaabbbbbbbbbb", "ccccccccccdddddddddd"}, lines)

	lines = wrapText("one\ntwo", 20)
	assert.Equal(t, []string{"one", "two"}, lines)
}
