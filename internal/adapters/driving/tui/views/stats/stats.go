// Package stats provides the memory statistics view for the TUI.
package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
	"github.com/custodia-labs/memora-cli/internal/core/ports/driving"
)

// View is the memory statistics view.
type View struct {
	styles        *styles.Styles
	memoryService driving.MemoryService

	stats   *domain.MemoryStats
	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new stats view.
func NewView(s *styles.Styles, memoryService driving.MemoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:        s,
		memoryService: memoryService,
	}
}

// Init initialises the view and triggers a load.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadStats()
}

// loadStats returns a command that fetches memory statistics.
func (v *View) loadStats() tea.Cmd {
	return func() tea.Msg {
		if v.memoryService == nil {
			return messages.StatsLoaded{Err: fmt.Errorf("memory service not available")}
		}

		stats, err := v.memoryService.Stats(context.Background())
		return messages.StatsLoaded{Stats: stats, Err: err}
	}
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StatsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.stats = msg.Stats
			v.err = nil
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
	case "r":
		v.loading = true
		return v, v.loadStats()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	if v.stats == nil {
		return nil
	}

	var lines []string

	lines = append(lines,
		v.formatField("Documents", fmt.Sprintf("%d", v.stats.TotalDocuments)),
		v.formatField("Handles", fmt.Sprintf("%d", v.stats.TotalHandles)),
		v.formatField("Strategy", v.stats.Strategy.Description()),
		v.formatField("Storage", v.stats.StorageLocation))

	if len(v.stats.EmbeddingKinds) > 0 {
		lines = append(lines, "", "Embeddings:")

		// Sort kinds for consistent display
		kinds := make([]string, 0, len(v.stats.EmbeddingKinds))
		for kind := range v.stats.EmbeddingKinds {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)

		for _, kind := range kinds {
			count := v.stats.EmbeddingKinds[domain.EmbeddingKind(kind)]
			lines = append(lines, fmt.Sprintf("  %s: %d", kind, count))
		}
	}

	lines = append(lines, "", "Available strategies:",
		fmt.Sprintf("  dense:   %s", availability(v.stats.Availability.Dense)),
		fmt.Sprintf("  sparse:  %s", availability(v.stats.Availability.Sparse)),
		fmt.Sprintf("  lexical: %s", availability(v.stats.Availability.Lexical)))

	return lines
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// View renders the stats view.
func (v *View) View() string {
	var b strings.Builder

	// Title
	b.WriteString(v.styles.Title.Render("Memory Stats"))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	// Loading state
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading statistics..."))
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

	// No stats yet
	if v.stats == nil {
		b.WriteString(v.styles.Muted.Render("No statistics available"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Content
	for _, line := range v.buildContent() {
		switch {
		case line == "Embeddings:" || line == "Available strategies:":
			b.WriteString(v.styles.Subtitle.Render(line))
		case strings.HasPrefix(line, "  "):
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				b.WriteString(v.styles.Muted.Render(parts[0] + ":"))
				b.WriteString(v.styles.Normal.Render(parts[1]))
			} else {
				b.WriteString(v.styles.Muted.Render(line))
			}
		case strings.Contains(line, ":"):
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				b.WriteString(v.styles.Subtitle.Render(parts[0] + ":"))
				b.WriteString(v.styles.Normal.Render(parts[1]))
			} else {
				b.WriteString(v.styles.Normal.Render(line))
			}
		default:
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Stats returns the current statistics.
func (v *View) Stats() *domain.MemoryStats {
	return v.stats
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func availability(available bool) string {
	if available {
		return "yes"
	}
	return "no"
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
