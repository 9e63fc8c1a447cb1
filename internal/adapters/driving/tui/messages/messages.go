// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewDashboard is the review dashboard with the applicant list.
	ViewDashboard
	// ViewAdmin is the admin placeholder page.
	ViewAdmin
	// ViewReporting is the reporting placeholder page.
	ViewReporting
	// ViewAnalytics is the analytics placeholder page.
	ViewAnalytics
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewDashboard:
		return "dashboard"
	case ViewAdmin:
		return "admin"
	case ViewReporting:
		return "reporting"
	case ViewAnalytics:
		return "analytics"
	case ViewSettings:
		return "settings"
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

// DecisionCompleted carries the session returned by a decision. On failure
// Err is set and the session still holds the selection and comments.
type DecisionCompleted struct {
	Session  domain.Session
	Decision domain.Decision
	Err      error
}

// WatchStarted carries the change stream of the backing source.
type WatchStarted struct {
	Changes <-chan domain.SourceChange
}

// SourceChanged signals that another program modified the backing source.
type SourceChanged struct {
	Change domain.SourceChange
}

// ReloadCompleted signals that records were re-read from the backing source.
type ReloadCompleted struct {
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Key string
	Err error
}
