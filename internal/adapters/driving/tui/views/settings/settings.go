// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when the view has no settings service.
var ErrNoSettingsService = errors.New("settings service not available")

// Row is one editable setting.
type Row struct {
	// Key is the config key passed to SettingsService.Set.
	Key   string
	Label string
	// Bool rows toggle on enter instead of opening the editor.
	Bool  bool
	value func(*domain.AppSettings) string
}

// Rows lists the settings in display order.
var Rows = []Row{
	{
		Key: "source.path", Label: "Backing source",
		value: func(s *domain.AppSettings) string { return s.Source.Path },
	},
	{
		Key: "source.watch", Label: "Watch for outside changes", Bool: true,
		value: func(s *domain.AppSettings) string { return strconv.FormatBool(s.Source.Watch) },
	},
	{
		Key: "review.page_size", Label: "Applicants per page",
		value: func(s *domain.AppSettings) string { return strconv.Itoa(s.Review.PageSize) },
	},
	{
		Key: "review.include_approved", Label: "Show approved by default", Bool: true,
		value: func(s *domain.AppSettings) string { return strconv.FormatBool(s.Review.IncludeApproved) },
	},
	{
		Key: "server.addr", Label: "HTTP listen address",
		value: func(s *domain.AppSettings) string { return s.Server.Addr },
	},
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    string

	selected int
	editor   *input.TextInput
	editing  bool

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		editor:          input.NewTextInput(s, "Value", "", 512),
		width:           80,
		height:          24,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.settings = msg.Settings
		v.err = nil
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.saved = msg.Key
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(Rows)-1 {
			v.selected++
		}
	case "enter":
		if v.settings == nil {
			return v, nil
		}
		row := Rows[v.selected]
		current := row.value(v.settings)
		if row.Bool {
			return v, v.saveSetting(row.Key, strconv.FormatBool(current != "true"))
		}
		v.editing = true
		v.saved = ""
		v.editor.SetValue(current)
		return v, v.editor.Focus()
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.stopEditing()
		return v, nil
	case "enter":
		value := strings.TrimSpace(v.editor.Value())
		key := Rows[v.selected].Key
		v.stopEditing()
		return v, v.saveSetting(key, value)
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.editor.Blur()
	v.editor.Reset()
}

// View renders the settings list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] Back"))
		return b.String()
	}

	for i, row := range Rows {
		cursor := "  "
		label := v.styles.Normal.Render(fmt.Sprintf("%-28s", row.Label))
		if i == v.selected {
			cursor = "> "
			label = v.styles.Subtitle.Render(fmt.Sprintf("%-28s", row.Label))
		}
		b.WriteString(cursor + label + " " + v.styles.Muted.Render(row.value(v.settings)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.editor.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] Save  [esc] Cancel"))
		return b.String()
	}

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n\n")
	case v.saved != "":
		b.WriteString(v.styles.Success.Render("Saved " + v.saved))
		b.WriteString("\n\n")
	}
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [enter] Edit/Toggle  [esc] Back"))
	return b.String()
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.selected = 0
	v.err = nil
	v.saved = ""
	v.stopEditing()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.editor.SetWidth(width - 4)
}

// Settings returns the loaded settings, nil before the first load.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}
