// Package content provides the expanded document view for the TUI.
package content

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// View displays the full text behind an expanded handle.
type View struct {
	styles *styles.Styles

	expanded *domain.ExpandedDocument
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new content view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		viewport: viewport.New(80, 20),
	}
}

// SetExpanded sets the expanded document to display.
func (v *View) SetExpanded(expanded *domain.ExpandedDocument) {
	v.expanded = expanded
	v.err = nil
	v.refreshContent()
	v.viewport.GotoTop()
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		v.resizeViewport()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses. Scrolling is delegated to the viewport.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "home", "g":
		v.viewport.GotoTop()
		return v, nil
	case "end", "G":
		v.viewport.GotoBottom()
		return v, nil
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHandleDetail}
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// resizeViewport fits the viewport to the current dimensions.
func (v *View) resizeViewport() {
	width := v.width - 4
	if width < 20 {
		width = 20
	}

	// Reserve lines for title, separator, meta, indicator, and help
	height := v.height - 8
	if height < 1 {
		height = 1
	}

	v.viewport.Width = width
	v.viewport.Height = height
	v.refreshContent()
}

// refreshContent rewraps the document text into the viewport.
func (v *View) refreshContent() {
	if v.expanded == nil {
		v.viewport.SetContent("")
		return
	}

	lines := wrapText(v.expanded.Document.Text, v.viewport.Width)
	v.viewport.SetContent(strings.Join(lines, "\n"))
}

// View renders the content view.
func (v *View) View() string {
	var b strings.Builder

	// Title
	title := "Document"
	if v.expanded != nil {
		if v.expanded.Handle.Summary != "" {
			title = v.expanded.Handle.Summary
		} else {
			title = v.expanded.Document.ID
		}
	}
	maxTitle := v.width - 4
	if maxTitle >= 10 && len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n")

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// No document loaded
	if v.expanded == nil {
		b.WriteString(v.styles.Muted.Render("(No document loaded)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Meta line
	doc := v.expanded.Document
	meta := fmt.Sprintf("hash: %s  kind: %s  importance: %.2f",
		shortHash(doc.TextHash), doc.EmbeddingKind, v.expanded.Handle.Importance)
	b.WriteString(v.styles.Muted.Render(meta))
	b.WriteString("\n\n")

	// Empty content
	if strings.TrimSpace(doc.Text) == "" {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Scrollable text
	b.WriteString(v.viewport.View())
	b.WriteString("\n\n")

	// Scroll position indicator
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%]", int(v.viewport.ScrollPercent()*100))))
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.resizeViewport()
}

// Expanded returns the current expanded document.
func (v *View) Expanded() *domain.ExpandedDocument {
	return v.expanded
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// shortHash returns a display prefix of a content hash.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
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
