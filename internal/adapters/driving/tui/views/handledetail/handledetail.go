// Package handledetail provides the context handle detail view for the TUI.
package handledetail

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

// View is the handle detail view.
type View struct {
	styles         *styles.Styles
	contextService driving.ContextService

	handle       *domain.ContextHandle
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	expanding    bool
}

// NewView creates a new handle detail view.
func NewView(s *styles.Styles, contextService driving.ContextService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:         s,
		contextService: contextService,
	}
}

// SetHandle sets the handle to display.
func (v *View) SetHandle(handle domain.ContextHandle) {
	v.handle = &handle
	v.scrollOffset = 0
	v.err = nil
	v.expanding = false
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the handle detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentExpanded:
		v.expanding = false
		if msg.Err != nil {
			v.err = msg.Err
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
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		maxOffset := v.maxScrollOffset()
		if v.scrollOffset < maxOffset {
			v.scrollOffset++
		}
	case "e", "enter":
		if v.expanding {
			return v, nil
		}
		v.expanding = true
		v.err = nil
		return v, v.expandHandle()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHandles}
		}
	}

	return v, nil
}

// expandHandle returns a command that expands the handle into its document.
func (v *View) expandHandle() tea.Cmd {
	handle := v.handle
	return func() tea.Msg {
		if handle == nil || v.contextService == nil {
			return messages.DocumentExpanded{Err: fmt.Errorf("context service not available")}
		}

		expanded, err := v.contextService.Expand(context.Background(), handle.ID)
		return messages.DocumentExpanded{
			HandleID: handle.ID,
			Expanded: expanded,
			Err:      err,
		}
	}
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator, help, and padding
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	lines := v.buildContent()
	maxOffset := len(lines) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent builds the content lines for display.
func (v *View) buildContent() []string {
	if v.handle == nil {
		return nil
	}

	var lines []string

	lines = append(lines,
		v.formatField("Handle ID", v.handle.ID),
		v.formatField("Document", v.handle.DocumentID),
		v.formatField("Type", string(v.handle.ContextType)),
		v.formatField("Importance", fmt.Sprintf("%.2f", v.handle.Importance)))

	if !v.handle.CreatedAt.IsZero() {
		lines = append(lines, v.formatField("Created", v.handle.CreatedAt.Format("2006-01-02 15:04:05")))
	}

	if v.handle.Summary != "" {
		lines = append(lines, "", "Summary:")
		for _, line := range wrapText(v.handle.Summary, v.contentWidth()) {
			lines = append(lines, "  "+line)
		}
	}

	if len(v.handle.KeyPhrases) > 0 {
		lines = append(lines, "", "Key Phrases:")
		for _, phrase := range v.handle.KeyPhrases {
			lines = append(lines, "  - "+phrase)
		}
	}

	return lines
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-12s %s", label+":", value)
}

// contentWidth returns the width available for wrapped text.
func (v *View) contentWidth() int {
	width := v.width - 6
	if width < 20 {
		width = 20
	}
	return width
}

// View renders the handle detail view.
func (v *View) View() string {
	var b strings.Builder

	// Title
	b.WriteString(v.styles.Title.Render("Handle Detail"))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// No handle selected
	if v.handle == nil {
		b.WriteString(v.styles.Muted.Render("No handle selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Expanding state
	if v.expanding {
		b.WriteString(v.styles.Muted.Render("Expanding document..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Content
	lines := v.buildContent()
	visibleLines := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visibleLines; i++ {
		line := lines[i]

		switch {
		case line == "Summary:" || line == "Key Phrases:":
			b.WriteString(v.styles.Subtitle.Render(line))
		case strings.HasPrefix(line, "  "):
			b.WriteString(v.styles.Normal.Render(line))
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

	// Scroll indicator
	if len(lines) > visibleLines {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			minInt(v.scrollOffset+visibleLines, len(lines)),
			len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [e/enter] expand  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Handle returns the current handle.
func (v *View) Handle() *domain.ContextHandle {
	return v.handle
}

// Expanding reports whether an expansion is in flight.
func (v *View) Expanding() bool {
	return v.expanding
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// wrapText wraps text to the given width.
func wrapText(text string, width int) []string {
	if width < 20 {
		width = 20
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if len(raw) <= width {
			lines = append(lines, raw)
			continue
		}
		for len(raw) > width {
			lines = append(lines, raw[:width])
			raw = raw[width:]
		}
		if raw != "" {
			lines = append(lines, raw)
		}
	}
	return lines
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
