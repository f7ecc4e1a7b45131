package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/views/content"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/views/handledetail"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/views/handles"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/views/query"
	"github.com/custodia-labs/memora-cli/internal/adapters/driving/tui/views/stats"
	"github.com/custodia-labs/memora-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// queryView is the memory query view component.
	queryView *query.View

	// handlesView is the context handle list view component.
	handlesView *handles.View

	// handleDetailView is the handle detail view component.
	handleDetailView *handledetail.View

	// contentView is the expanded document view component.
	contentView *content.View

	// statsView is the memory statistics view component.
	statsView *stats.View

	// selectedHandle tracks the currently selected handle for navigation.
	selectedHandle *domain.ContextHandle

	// currentView tracks which view is active.
	currentView messages.ViewType

	// query is the current query text (kept for accessor compatibility).
	query string

	// matches holds the current query matches (kept for accessor compatibility).
	matches []domain.QueryMatch

	// selectedIndex is the currently selected match (kept for accessor compatibility).
	selectedIndex int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	menuView := menu.NewView(s)
	queryView := query.NewView(s, nil, ports.Memory)
	handlesView := handles.NewView(s, ports.Context)
	handleDetailView := handledetail.NewView(s, ports.Context)
	contentView := content.NewView(s)
	statsView := stats.NewView(s, ports.Memory)

	return &App{
		ports:            ports,
		ctx:              context.Background(),
		styles:           s,
		menuView:         menuView,
		queryView:        queryView,
		handlesView:      handlesView,
		handleDetailView: handleDetailView,
		contentView:      contentView,
		statsView:        statsView,
		currentView:      messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.queryView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("memora - Agent Memory"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.queryView.SetDimensions(msg.Width, msg.Height)
		a.handlesView.SetDimensions(msg.Width, msg.Height)
		a.handleDetailView.SetDimensions(msg.Width, msg.Height)
		a.contentView.SetDimensions(msg.Width, msg.Height)
		a.statsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewQuery:
			a.queryView, cmd = a.queryView.Update(msg)
			// Sync state from queryView for accessor compatibility
			a.query = a.queryView.Query()
			a.matches = a.queryView.Matches()
			a.selectedIndex = a.queryView.SelectedIndex()
			a.err = a.queryView.Err()
			return a, cmd

		case messages.ViewHandles:
			a.handlesView, cmd = a.handlesView.Update(msg)
			return a, cmd

		case messages.ViewHandleDetail:
			a.handleDetailView, cmd = a.handleDetailView.Update(msg)
			return a, cmd

		case messages.ViewContent:
			a.contentView, cmd = a.contentView.Update(msg)
			return a, cmd

		case messages.ViewStats:
			a.statsView, cmd = a.statsView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.QueryCompleted:
		// Forward to queryView
		a.queryView, cmd = a.queryView.Update(msg)
		// Sync state
		a.matches = a.queryView.Matches()
		a.err = a.queryView.Err()
		a.selectedIndex = 0
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewQuery:
			a.queryView.Reset()
			return a, a.queryView.Init()
		case messages.ViewHandles:
			return a, a.handlesView.Init()
		case messages.ViewStats:
			return a, a.statsView.Init()
		case messages.ViewMenu, messages.ViewHelp,
			messages.ViewHandleDetail, messages.ViewContent:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.HandleSelected:
		// Navigate from handle list to handle detail
		a.selectedHandle = &msg.Handle
		a.handleDetailView.SetHandle(msg.Handle)
		a.currentView = messages.ViewHandleDetail
		return a, nil

	case messages.HandlesLoaded:
		a.handlesView, cmd = a.handlesView.Update(msg)
		return a, cmd

	case messages.DocumentExpanded:
		// Clear the in-flight state on the detail view first
		a.handleDetailView, cmd = a.handleDetailView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.contentView.SetExpanded(msg.Expanded)
		a.currentView = messages.ViewContent
		return a, cmd

	case messages.StatsLoaded:
		if a.currentView == messages.ViewStats {
			a.statsView, cmd = a.statsView.Update(msg)
			return a, cmd
		}

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewQuery:
			a.queryView, cmd = a.queryView.Update(msg)
		case messages.ViewHandles:
			a.handlesView, cmd = a.handlesView.Update(msg)
		case messages.ViewHandleDetail:
			a.handleDetailView, cmd = a.handleDetailView.Update(msg)
		case messages.ViewContent:
			a.contentView, cmd = a.contentView.Update(msg)
		case messages.ViewStats:
			a.statsView, cmd = a.statsView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewQuery:
		a.queryView, cmd = a.queryView.Update(msg)
	case messages.ViewHandles:
		a.handlesView, cmd = a.handlesView.Update(msg)
	case messages.ViewHandleDetail:
		a.handleDetailView, cmd = a.handleDetailView.Update(msg)
	case messages.ViewContent:
		a.contentView, cmd = a.contentView.Update(msg)
	case messages.ViewStats:
		a.statsView, cmd = a.statsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewQuery:
		return a.queryView.View()
	case messages.ViewHandles:
		return a.handlesView.View()
	case messages.ViewHandleDetail:
		return a.handleDetailView.View()
	case messages.ViewContent:
		return a.contentView.View()
	case messages.ViewStats:
		return a.statsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Query:
  (type)      Enter query text
  enter       Submit query
  n           New query
  esc         Back to Menu

Handles:
  j/k, ↑/↓    Navigate handles
  enter       Open detail
  f           Cycle importance filter
  r           Reload

Handle Detail:
  e, enter    Expand the stored document
  esc         Back to Handles

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Query returns the current query text.
func (a *App) Query() string {
	return a.query
}

// Matches returns the current query matches.
func (a *App) Matches() []domain.QueryMatch {
	return a.matches
}

// SelectedIndex returns the currently selected match index.
func (a *App) SelectedIndex() int {
	return a.selectedIndex
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Forward to all views for proper sizing, matching the WindowSizeMsg handler
	a.menuView.SetDimensions(width, height)
	a.queryView.SetDimensions(width, height)
	a.handlesView.SetDimensions(width, height)
	a.handleDetailView.SetDimensions(width, height)
	a.contentView.SetDimensions(width, height)
	a.statsView.SetDimensions(width, height)
}
