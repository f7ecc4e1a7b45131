// Package styles defines the TUI colour theme and the lipgloss styles
// shared by every view.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the memora palette: violet primary with an amber
// accent on a near-black background.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"),
		Secondary:  lipgloss.Color("#F59E0B"),
		Background: lipgloss.Color("#16161D"),
		Foreground: lipgloss.Color("#E4E4EF"),
		Muted:      lipgloss.Color("#6E6A86"),
		Success:    lipgloss.Color("#34D399"),
		Warning:    lipgloss.Color("#FBBF24"),
		Error:      lipgloss.Color("#EB6F92"),
		Border:     lipgloss.Color("#393552"),
	}
}

// Styles holds the pre-built lipgloss styles. Title through Help are the
// generic text roles; Score and Importance style the two numbers the
// memory views lean on, so ranked matches and handle listings read the
// same everywhere.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style

	// Score renders query match scores.
	Score lipgloss.Style

	// Importance renders handle importance values.
	Importance lipgloss.Style

	// InputField wraps text inputs in a rounded border.
	InputField lipgloss.Style

	// StatusBar is the bottom bar with key hints.
	StatusBar lipgloss.Style
}

// NewStyles builds the style set from a theme. A nil theme selects the
// default palette.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	text := lipgloss.NewStyle().Foreground(theme.Foreground)
	muted := lipgloss.NewStyle().Foreground(theme.Muted)

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   text,
		Muted:    muted,
		Selected: text.Bold(true).Background(theme.Primary),
		Error:    lipgloss.NewStyle().Foreground(theme.Error),
		Success:  lipgloss.NewStyle().Foreground(theme.Success),
		Warning:  lipgloss.NewStyle().Foreground(theme.Warning),
		Help:     muted,

		Score:      lipgloss.NewStyle().Foreground(theme.Secondary),
		Importance: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: muted.
			Background(theme.Background).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(nil)
}

// Theme returns the palette these styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
