package query

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// MockMemoryService implements driving.MemoryService for testing.
type MockMemoryService struct {
	QueryFunc func(ctx context.Context, text string, topK int) ([]domain.QueryMatch, error)
}

func (m *MockMemoryService) Add(
	ctx context.Context, documentID, text string, metadata map[string]any,
) (string, error) {
	return "", nil
}

func (m *MockMemoryService) Query(
	ctx context.Context, text string, topK int,
) ([]domain.QueryMatch, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, text, topK)
	}
	return []domain.QueryMatch{}, nil
}

func (m *MockMemoryService) DocumentByHandle(
	ctx context.Context, handleID string,
) (*domain.ExpandedDocument, error) {
	return nil, nil
}

func (m *MockMemoryService) Stats(ctx context.Context) (*domain.MemoryStats, error) {
	return nil, nil
}

func testMatches() []domain.QueryMatch {
	return []domain.QueryMatch{
		{DocumentID: "doc-1", Score: 0.950, Metadata: map[string]any{"source": "notes"}},
		{DocumentID: "doc-2", Score: 0.850},
	}
}

func typeQuery(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	view := NewView(s, km, &MockMemoryService{})

	require.NotNil(t, view)
	assert.True(t, view.InputFocused())
	assert.False(t, view.Querying())
	assert.Empty(t, view.Matches())
}

func TestNewView_NilDefaults(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})

	cmd := view.Init()

	assert.NotNil(t, cmd) // cursor blink
}

func TestView_WithContext(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})

	result := view.WithContext(context.Background())

	assert.Equal(t, view, result)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})

	msg := tea.WindowSizeMsg{Width: 100, Height: 40}
	updated, cmd := view.Update(msg)

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.Ready())
	assert.Equal(t, 100, view.Width())
	assert.Equal(t, 40, view.Height())
}

func TestView_Update_TypesQuery(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)

	typeQuery(view, "rollback plan")

	assert.Equal(t, "rollback plan", view.Query())
}

func TestView_Update_Enter_SubmitsQuery(t *testing.T) {
	queried := false
	svc := &MockMemoryService{
		QueryFunc: func(ctx context.Context, text string, topK int) ([]domain.QueryMatch, error) {
			queried = true
			assert.Equal(t, "rollback", text)
			assert.Equal(t, defaultTopK, topK)
			return testMatches(), nil
		},
	}
	view := NewView(nil, nil, svc)
	view.SetDimensions(80, 24)
	typeQuery(view, "rollback")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.True(t, view.Querying())
	assert.False(t, view.InputFocused())

	// Batch contains the spinner tick and the query command; run it and
	// collect the QueryCompleted message.
	msg := cmd()
	completed := findQueryCompleted(t, msg)
	assert.True(t, queried)
	assert.Len(t, completed.Matches, 2)
}

// findQueryCompleted digs a QueryCompleted out of a possibly-batched message.
func findQueryCompleted(t *testing.T, msg tea.Msg) messages.QueryCompleted {
	t.Helper()

	if completed, ok := msg.(messages.QueryCompleted); ok {
		return completed
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if completed, ok := c().(messages.QueryCompleted); ok {
				return completed
			}
		}
	}
	t.Fatalf("no QueryCompleted in %T", msg)
	return messages.QueryCompleted{}
}

func TestView_Update_Enter_EmptyQuery(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, view.Querying())
	assert.True(t, view.InputFocused())
}

func TestView_Update_Esc_ReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	result := cmd()
	changed, ok := result.(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, changed.View)
}

func TestView_Update_QueryCompleted(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)
	view.querying = true

	view.Update(messages.QueryCompleted{Matches: testMatches()})

	assert.False(t, view.Querying())
	assert.Len(t, view.Matches(), 2)
	assert.Equal(t, 0, view.SelectedIndex())
	assert.NoError(t, view.Err())
	assert.False(t, view.InputFocused())
}

func TestView_Update_QueryCompleted_WithError(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)
	view.querying = true

	view.Update(messages.QueryCompleted{Err: errors.New("query failed")})

	assert.False(t, view.Querying())
	assert.Error(t, view.Err())
}

func TestView_Update_ErrorOccurred(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)

	view.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Error(t, view.Err())
}

func TestView_Update_ResultsNavigation(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)
	view.Update(messages.QueryCompleted{Matches: testMatches()})

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, view.SelectedIndex())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_Update_NewQueryKey(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)
	view.Update(messages.QueryCompleted{Matches: testMatches()})
	require.False(t, view.InputFocused())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.True(t, view.InputFocused())
	assert.Equal(t, "", view.Query())
}

func TestView_PerformQuery_NilService(t *testing.T) {
	view := NewView(nil, nil, nil)

	cmd := view.performQuery("anything")
	msg := cmd()

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoMemoryService)
}

func TestView_PerformQuery_ServiceError(t *testing.T) {
	svc := &MockMemoryService{
		QueryFunc: func(ctx context.Context, text string, topK int) ([]domain.QueryMatch, error) {
			return nil, errors.New("store offline")
		},
	}
	view := NewView(nil, nil, svc)

	cmd := view.performQuery("anything")
	msg := cmd()

	completed, ok := msg.(messages.QueryCompleted)
	require.True(t, ok)
	assert.Error(t, completed.Err)
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})

	assert.Contains(t, view.View(), "Initialising")
}

func TestView_View_Ready(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)

	output := view.View()

	assert.Contains(t, output, "Memora")
	assert.Contains(t, output, "Query:")
	assert.Contains(t, output, "No matches")
}

func TestView_View_WithMatches(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)
	view.Update(messages.QueryCompleted{Matches: testMatches()})

	output := view.View()

	assert.Contains(t, output, "Matches (2)")
	assert.Contains(t, output, "doc-1")
	assert.Contains(t, output, "0.950")
}

func TestView_View_WithError(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)
	view.Update(messages.ErrorOccurred{Err: errors.New("store offline")})

	output := view.View()

	assert.Contains(t, output, "Error:")
	assert.Contains(t, output, "store offline")
}

func TestView_View_Querying(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)
	view.querying = true

	output := view.View()

	assert.Contains(t, output, "Querying...")
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)
	view.Update(messages.QueryCompleted{Matches: testMatches()})
	view.err = errors.New("old error")

	view.Reset()

	assert.True(t, view.InputFocused())
	assert.False(t, view.Querying())
	assert.Empty(t, view.Matches())
	assert.Equal(t, "", view.Query())
	assert.NoError(t, view.Err())
}

func TestView_ClearError(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.err = errors.New("old error")

	view.ClearError()

	assert.NoError(t, view.Err())
}

func TestView_SetQuery(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})

	view.SetQuery("retro notes")

	assert.Equal(t, "retro notes", view.Query())
}

func TestView_SelectedMatch(t *testing.T) {
	view := NewView(nil, nil, &MockMemoryService{})
	view.SetDimensions(80, 24)

	assert.Nil(t, view.SelectedMatch())

	view.Update(messages.QueryCompleted{Matches: testMatches()})

	match := view.SelectedMatch()
	require.NotNil(t, match)
	assert.Equal(t, "doc-1", match.DocumentID)
}
