// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// MatchList displays ranked query matches in a navigable list.
type MatchList struct {
	matches  []domain.QueryMatch
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewMatchList creates a new match list component.
func NewMatchList(s *styles.Styles) *MatchList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MatchList{
		matches:  nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the match list.
func (m *MatchList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (m *MatchList) Update(msg tea.Msg) (*MatchList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			m.MoveUp()
		case tea.KeyDown:
			m.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			m.MoveUp()
		case "j":
			m.MoveDown()
		}
	}
	return m, nil
}

// View renders the match list.
func (m *MatchList) View() string {
	if len(m.matches) == 0 {
		return m.styles.Muted.Render("No matches")
	}

	lines := make([]string, 0, len(m.matches)*2+2)

	// Header
	header := m.styles.Subtitle.Render(fmt.Sprintf("Matches (%d)", len(m.matches)))
	lines = append(lines, header, "")

	// Each match takes two lines (ID + metadata preview), so divide by 3 for safety
	visibleCount := (m.height - 4) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if m.selected >= visibleCount {
		start = m.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(m.matches) {
		end = len(m.matches)
	}

	for i := start; i < end; i++ {
		line := m.renderMatch(i, &m.matches[i])
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderMatch formats a single match with its metadata preview.
func (m *MatchList) renderMatch(index int, match *domain.QueryMatch) string {
	// Indicator for selected item
	indicator := "  "
	if index == m.selected {
		indicator = "> "
	}

	id := match.DocumentID
	if id == "" {
		id = "(unknown)"
	}

	// Truncate ID if too long
	maxIDLen := m.width - 20
	if maxIDLen < 10 {
		maxIDLen = 10
	}
	if len(id) > maxIDLen {
		id = id[:maxIDLen-3] + "..."
	}

	score := fmt.Sprintf("%.3f", match.Score)

	var idLine string
	if index == m.selected {
		idLine = m.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxIDLen, id, score))
	} else {
		idLine = m.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxIDLen, id)) +
			m.styles.Score.Render(score)
	}

	// Metadata preview line
	preview := metadataPreview(match.Metadata)
	if preview == "" {
		return idLine
	}

	maxPreviewLen := m.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	if len(preview) > maxPreviewLen {
		preview = preview[:maxPreviewLen-3] + "..."
	}

	previewLine := m.styles.Muted.Render("    " + preview)

	return idLine + "\n" + previewLine
}

// metadataPreview flattens metadata into sorted key=value pairs.
func metadataPreview(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, metadata[k]))
	}
	return strings.Join(pairs, ", ")
}

// SetMatches updates the match list.
func (m *MatchList) SetMatches(matches []domain.QueryMatch) {
	m.matches = matches
	m.selected = 0
}

// Matches returns the current matches.
func (m *MatchList) Matches() []domain.QueryMatch {
	return m.matches
}

// Selected returns the index of the selected match.
func (m *MatchList) Selected() int {
	return m.selected
}

// SetSelected sets the selected index.
func (m *MatchList) SetSelected(index int) {
	if index >= 0 && index < len(m.matches) {
		m.selected = index
	}
}

// SelectedMatch returns the currently selected match, or nil if none.
func (m *MatchList) SelectedMatch() *domain.QueryMatch {
	if len(m.matches) == 0 || m.selected < 0 || m.selected >= len(m.matches) {
		return nil
	}
	return &m.matches[m.selected]
}

// MoveUp moves selection up.
func (m *MatchList) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

// MoveDown moves selection down.
func (m *MatchList) MoveDown() {
	if m.selected < len(m.matches)-1 {
		m.selected++
	}
}

// SetDimensions sets the component dimensions.
func (m *MatchList) SetDimensions(width, height int) {
	m.width = width
	m.height = height
}

// Width returns the current width.
func (m *MatchList) Width() int {
	return m.width
}

// Height returns the current height.
func (m *MatchList) Height() int {
	return m.height
}

// Count returns the number of matches.
func (m *MatchList) Count() int {
	return len(m.matches)
}

// IsEmpty returns whether the list is empty.
func (m *MatchList) IsEmpty() bool {
	return len(m.matches) == 0
}
