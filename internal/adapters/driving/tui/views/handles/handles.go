// Package handles provides the context handle list view for the TUI.
package handles

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

// importanceSteps are the filter thresholds cycled by the f key.
var importanceSteps = []float64{0, 0.25, 0.5, 0.75}

// View is the context handle list view.
type View struct {
	styles         *styles.Styles
	contextService driving.ContextService

	handles      []domain.ContextHandle
	selected     int
	filterIndex  int
	width        int
	height       int
	ready        bool
	err          error
	loading      bool
	scrollOffset int
}

// NewView creates a new handles view.
func NewView(s *styles.Styles, contextService driving.ContextService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:         s,
		contextService: contextService,
		handles:        []domain.ContextHandle{},
	}
}

// Init initialises the view and triggers a load.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadHandles()
}

// loadHandles returns a command that lists handles under the active filter.
func (v *View) loadHandles() tea.Cmd {
	return func() tea.Msg {
		if v.contextService == nil {
			return messages.HandlesLoaded{Err: fmt.Errorf("context service not available")}
		}

		filter := domain.HandleFilter{MinImportance: v.MinImportance()}
		handles, err := v.contextService.Handles(context.Background(), filter)
		return messages.HandlesLoaded{Handles: handles, Err: err}
	}
}

// Update handles messages for the handles view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.HandlesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.handles = msg.Handles
			v.err = nil
			if v.selected >= len(v.handles) {
				v.selected = 0
				v.scrollOffset = 0
			}
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.handles)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.handles) {
			handle := v.handles[v.selected]
			return v, func() tea.Msg {
				return messages.HandleSelected{Handle: handle}
			}
		}
	case "f":
		// Cycle the importance threshold and reload
		v.filterIndex = (v.filterIndex + 1) % len(importanceSteps)
		v.selected = 0
		v.scrollOffset = 0
		v.loading = true
		return v, v.loadHandles()
	case "r":
		v.loading = true
		return v, v.loadHandles()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visibleItems := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visibleItems {
		v.scrollOffset = v.selected - visibleItems + 1
	}
}

// visibleItemCount returns the number of items that can be displayed.
func (v *View) visibleItemCount() int {
	// Reserve lines for title, filter, help, and padding
	reserved := 8
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the handles view.
func (v *View) View() string {
	var b strings.Builder

	// Title
	title := fmt.Sprintf("Context Handles (%d)", len(v.handles))
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	// Active filter
	if v.MinImportance() > 0 {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Filter: importance >= %.2f", v.MinImportance())))
	} else {
		b.WriteString(v.styles.Muted.Render("Filter: none"))
	}
	b.WriteString("\n\n")

	// Loading state
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading handles..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Empty state
	if len(v.handles) == 0 {
		b.WriteString(v.styles.Muted.Render("No handles stored. Add memory with 'memora add'."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Handles list
	visibleItems := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.handles) && i < v.scrollOffset+visibleItems; i++ {
		line := v.renderHandle(i, &v.handles[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(v.handles) > visibleItems {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visibleItems, len(v.handles)),
			len(v.handles))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHandle renders a single handle line.
func (v *View) renderHandle(index int, handle *domain.ContextHandle) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	id := handle.ID
	maxIDLen := v.width/3 - 4
	if maxIDLen < 10 {
		maxIDLen = 10
	}
	if len(id) > maxIDLen {
		id = id[:maxIDLen-3] + "..."
	}

	importance := fmt.Sprintf("%.2f", handle.Importance)

	summary := handle.Summary
	maxSummaryLen := v.width/2 - 4
	if maxSummaryLen < 10 {
		maxSummaryLen = 10
	}
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen-3] + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s  %s", indicator, maxIDLen, id, importance, summary))
	}

	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxIDLen, id)) +
		v.styles.Importance.Render(importance) +
		v.styles.Muted.Render("  "+summary)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] detail  [f] filter  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Handles returns the current list of handles.
func (v *View) Handles() []domain.ContextHandle {
	return v.handles
}

// SelectedIndex returns the currently selected handle index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// SelectedHandle returns the currently selected handle.
func (v *View) SelectedHandle() *domain.ContextHandle {
	if v.selected < len(v.handles) {
		return &v.handles[v.selected]
	}
	return nil
}

// MinImportance returns the active importance threshold.
func (v *View) MinImportance() float64 {
	return importanceSteps[v.filterIndex]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
