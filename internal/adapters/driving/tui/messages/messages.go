// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// QueryChanged is sent when the query input changes.
type QueryChanged struct {
	Query string
}

// QueryCompleted carries ranked matches back to the model.
type QueryCompleted struct {
	Matches []domain.QueryMatch
	Err     error
}

// MatchSelected is sent when a query match is selected.
type MatchSelected struct {
	Index int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewQuery is the query input and ranked results view.
	ViewQuery
	// ViewHandles lists context handles.
	ViewHandles
	// ViewHandleDetail shows a single handle's bounded record.
	ViewHandleDetail
	// ViewContent shows an expanded document's full text.
	ViewContent
	// ViewStats shows corpus statistics.
	ViewStats
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewQuery:
		return "query"
	case ViewHandles:
		return "handles"
	case ViewHandleDetail:
		return "handle_detail"
	case ViewContent:
		return "content"
	case ViewStats:
		return "stats"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// HandlesLoaded carries the list of context handles from the service.
type HandlesLoaded struct {
	Handles []domain.ContextHandle
	Err     error
}

// HandleSelected signals a handle was selected for detail view.
type HandleSelected struct {
	Handle domain.ContextHandle
}

// DocumentExpanded carries a handle expansion result.
// Expanded is nil when Err is set.
type DocumentExpanded struct {
	HandleID string
	Expanded *domain.ExpandedDocument
	Err      error
}

// StatsLoaded carries the corpus statistics.
type StatsLoaded struct {
	Stats *domain.MemoryStats
	Err   error
}
