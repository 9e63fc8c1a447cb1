package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/views/placeholder"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// sessionID tags every log line of this TUI run.
	sessionID string

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView      *menu.View
	dashboardView *dashboard.View
	settingsView  *settings.View
	adminView     *placeholder.View
	reportingView *placeholder.View
	analyticsView *placeholder.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// changes streams outside modifications of the backing source.
	changes <-chan domain.SourceChange

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

	list := listSettings(ports)
	ctx := context.Background()
	s := styles.DefaultStyles()

	app := &App{
		ports:     ports,
		ctx:       ctx,
		sessionID: uuid.NewString(),
		styles:    s,
		menuView:  menu.NewView(s),
		dashboardView: dashboard.NewView(
			ctx, s, ports.Applicants, ports.Review,
			list.PageSize, list.IncludeApproved,
		),
		settingsView:  settings.NewView(s, ports.Settings),
		adminView:     placeholder.NewView(s, "Admin", "User and role administration is not available yet."),
		reportingView: placeholder.NewView(s, "Reporting", "Reports are not available yet."),
		analyticsView: placeholder.NewView(s, "Analytics", "Analytics are not available yet."),
		currentView:   messages.ViewMenu,
	}

	logger.L().Info("tui session started",
		zap.String("session", app.sessionID),
		zap.String("source", ports.Applicants.Path()),
	)
	return app, nil
}

// listSettings returns the configured list settings, or the defaults when
// no settings service is wired or it fails.
func listSettings(ports *Ports) domain.ReviewSettings {
	defaults := domain.DefaultAppSettings().Review
	if ports.Settings == nil {
		return defaults
	}
	s, err := ports.Settings.Get()
	if err != nil || s == nil {
		logger.Warn("Using default list settings: %v", err)
		return defaults
	}
	return s.Review
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.dashboardView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("reviewdesk - Applicant Review"),
		a.dashboardView.Init(),
		a.startWatch(),
	)
}

// startWatch subscribes to changes of the backing source.
func (a *App) startWatch() tea.Cmd {
	if a.ports.Watcher == nil {
		return nil
	}
	watcher := a.ports.Watcher
	ctx := a.ctx
	return func() tea.Msg {
		changes, err := watcher.Watch(ctx)
		if err != nil {
			return messages.ErrorOccurred{Err: fmt.Errorf("watching source: %w", err)}
		}
		return messages.WatchStarted{Changes: changes}
	}
}

// waitForChange blocks until the next change arrives on the stream.
func waitForChange(changes <-chan domain.SourceChange) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return messages.SourceChanged{Change: change}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewDashboard:
			return a, a.dashboardView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewAdmin, messages.ViewReporting,
			messages.ViewAnalytics, messages.ViewHelp:
			// Static views need no initialisation
		}
		return a, nil

	case messages.WatchStarted:
		a.changes = msg.Changes
		return a, waitForChange(a.changes)

	case messages.SourceChanged:
		logger.L().Info("backing source changed",
			zap.String("session", a.sessionID),
			zap.String("path", msg.Change.Path),
			zap.Bool("removed", msg.Change.Removed),
		)
		a.dashboardView, _ = a.dashboardView.Update(msg)
		return a, waitForChange(a.changes)

	case messages.DecisionCompleted:
		a.logDecision(msg)
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.ReloadCompleted:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		if msg.Err == nil {
			a.applyListSettings()
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		logger.Warn("%v", msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewDashboard:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewAdmin:
		a.adminView, cmd = a.adminView.Update(msg)
	case messages.ViewReporting:
		a.reportingView, cmd = a.reportingView.Update(msg)
	case messages.ViewAnalytics:
		a.analyticsView, cmd = a.analyticsView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

func (a *App) logDecision(msg messages.DecisionCompleted) {
	if msg.Err != nil {
		logger.L().Warn("decision failed",
			zap.String("session", a.sessionID),
			zap.String("applicant", msg.Session.SelectedID),
			zap.String("decision", string(msg.Decision)),
			zap.Error(msg.Err),
		)
		return
	}
	id := ""
	if msg.Session.Confirmation != nil {
		id = msg.Session.Confirmation.ApplicantID
	}
	logger.L().Info("decision saved",
		zap.String("session", a.sessionID),
		zap.String("applicant", id),
		zap.String("decision", string(msg.Decision)),
	)
}

// applyListSettings pushes changed list settings into the dashboard.
func (a *App) applyListSettings() {
	if a.ports.Settings == nil {
		return
	}
	list := listSettings(a.ports)
	a.dashboardView.SetListSettings(list.PageSize, list.IncludeApproved)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDashboard:
		return a.dashboardView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewAdmin:
		return a.adminView.View()
	case messages.ViewReporting:
		return a.reportingView.View()
	case messages.ViewAnalytics:
		return a.analyticsView.View()
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
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Dashboard:
  j/k, ↑/↓    Move through applicants
  enter       Open applicant
  ←/h, →/l    Previous / next page
  /           Search by id, name or status
  a           Show or hide approved applications
  r           Reload the backing source

Applicant:
  c           Write comments
  A           Approve
  R           Reject
  esc         Close

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Dashboard returns the dashboard view.
func (a *App) Dashboard() *dashboard.View {
	return a.dashboardView
}

// SessionID returns the id tagging this run's log lines.
func (a *App) SessionID() string {
	return a.sessionID
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.dashboardView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
	a.adminView.SetDimensions(width, height)
	a.reportingView.SetDimensions(width, height)
	a.analyticsView.SetDimensions(width, height)
}
