// Package status renders the one-line state and keybinding bar shown
// under the query view.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
)

// State selects what the left segment of the bar shows.
type State string

const (
	StateReady    State = "ready"
	StateQuerying State = "querying"
	StateError    State = "error"
	StateResults  State = "results"
)

// Bar shows the current query state on the left and contextual
// keybinding hints on the right. It is passive: views drive it through
// the Set methods and render it with View.
type Bar struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	state      State
	message    string
	matchCount int
	width      int
}

// NewBar creates a status bar in the ready state.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init implements the component contract; the bar needs no initial command.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// View renders both segments padded apart to the bar's width.
func (s *Bar) View() string {
	left := s.stateSegment()
	right := s.hintSegment()

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

// stateSegment renders the state, error message, or match count.
func (s *Bar) stateSegment() string {
	switch s.state {
	case StateQuerying:
		return s.styles.Muted.Render("Querying...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateReady, StateResults:
		if s.matchCount > 0 {
			return s.styles.Normal.Render(fmt.Sprintf("%d matches", s.matchCount))
		}
	}
	return s.styles.Muted.Render("Ready")
}

// hintSegment renders the keybindings relevant to the current state.
func (s *Bar) hintSegment() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateResults && s.matchCount > 0 {
		bindings = s.keymap.ResultsHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the message shown in the error state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetMatchCount sets how many matches the last query returned.
func (s *Bar) SetMatchCount(count int) {
	s.matchCount = count
}

// MatchCount returns the current match count.
func (s *Bar) MatchCount() int {
	return s.matchCount
}

// SetWidth sets the render width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current render width.
func (s *Bar) Width() int {
	return s.width
}

// Clear returns the bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.matchCount = 0
}
