// Package styles holds the TUI palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

// Theme is the colour palette. Colours are hex strings.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// ProgressFrom and ProgressTo are the ends of the merge progress gradient.
	ProgressFrom string
	ProgressTo   string
}

// DefaultTheme is a dark palette: blue accents, green for finished merges.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:      "#2563EB",
		Secondary:    "#06B6D4",
		Foreground:   "#CDD6F4",
		Muted:        "#6C7086",
		Border:       "#45475A",
		Bar:          "#181825",
		Success:      "#A6E3A1",
		Warning:      "#F9E2AF",
		Error:        "#F38BA8",
		ProgressFrom: "#2563EB",
		ProgressTo:   "#A6E3A1",
	}
}

// Styles are the rendered styles shared by all views.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Help     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	InputField   lipgloss.Style
	FocusedField lipgloss.Style
	Panel        lipgloss.Style
	StatusBar    lipgloss.Style
}

// LabelWidth aligns form labels and detail keys.
const LabelWidth = 14

// NewStyles builds styles from theme, or from DefaultTheme when theme is nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	box := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Padding(0, 1)
	}

	return &Styles{
		theme: theme,

		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: fg(theme.Secondary).Bold(true),
		Label:    fg(theme.Muted).Width(LabelWidth),
		Help:     fg(theme.Muted),

		Success: fg(theme.Success),
		Warning: fg(theme.Warning),
		Error:   fg(theme.Error),

		InputField:   box(theme.Border),
		FocusedField: box(theme.Primary),
		Panel:        box(theme.Border),
		StatusBar:    fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
	}
}

// DefaultStyles returns styles for DefaultTheme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// RunStatus colours a history row by its outcome.
func (s *Styles) RunStatus(status domain.RunStatus) lipgloss.Style {
	switch status {
	case domain.RunFailed:
		return s.Error
	case domain.RunRunning:
		return s.Warning
	default:
		return s.Normal
	}
}
