// Package styles holds the dashboard palette and the lipgloss styles built from it.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// Theme is the dashboard palette. Each review status has its own accent,
// used for card borders and list labels.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Statuses maps a review status to its accent. Unlisted statuses use Muted.
	Statuses map[domain.Status]lipgloss.Color
}

// DefaultTheme returns the dark dashboard palette.
func DefaultTheme() *Theme {
	t := &Theme{
		Primary:    "#2563EB",
		Secondary:  "#06B6D4",
		Background: "#1E1E2E",
		Foreground: "#CDD6F4",
		Muted:      "#6C7086",
		Border:     "#45475A",
		Success:    "#A6E3A1",
		Warning:    "#F9E2AF",
		Error:      "#F38BA8",
	}
	t.Statuses = map[domain.Status]lipgloss.Color{
		domain.StatusApproved:        t.Success,
		domain.StatusInProgress:      t.Secondary,
		domain.StatusAlerts:          t.Error,
		domain.StatusPendingApproval: t.Warning,
		domain.StatusRejected:        "#FAB387",
	}
	return t
}

// Styles are the rendered forms of a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style

	// Selected is the list cursor row.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	// Border frames the applicant detail panel.
	Border lipgloss.Style

	// Card frames one status count; callers set the border colour per status.
	Card lipgloss.Style

	// Banner shows a saved decision until it is dismissed.
	Banner lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	framed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Help:     fg(theme.Muted),
		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),

		Error:   fg(theme.Error),
		Success: fg(theme.Success),
		Warning: fg(theme.Warning),

		InputField: framed.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(lipgloss.Color("#181825")).Padding(0, 1),
		Border:     framed,
		Card:       framed.Padding(0, 1).Width(22),
		Banner:     fg(theme.Background).Background(theme.Success).Bold(true).Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// StatusColour returns the accent of a review status.
func (s *Styles) StatusColour(status domain.Status) lipgloss.Color {
	if c, ok := s.theme.Statuses[status]; ok {
		return c
	}
	return s.theme.Muted
}

// Status renders a status label in its accent.
func (s *Styles) Status(status domain.Status) string {
	return lipgloss.NewStyle().Foreground(s.StatusColour(status)).Render(status.String())
}
