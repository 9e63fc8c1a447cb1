// Package menu is the sidebar that switches between the dashboard sections.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/styles"
)

// Item is one section of the sidebar.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType

	// Quit exits the program instead of switching view.
	Quit bool
}

var sections = []Item{
	{Label: "Dashboard", Description: "Status counts and the applicant review list", View: messages.ViewDashboard},
	{Label: "Admin", Description: "Reviewer administration", View: messages.ViewAdmin},
	{Label: "Reporting", Description: "Decision reports", View: messages.ViewReporting},
	{Label: "Analytics", Description: "Review trends", View: messages.ViewAnalytics},
	{Label: "Settings", Description: "Backing source and list preferences", View: messages.ViewSettings},
	{Label: "Help", Description: "Keyboard shortcuts", View: messages.ViewHelp},
	{Label: "Quit", Description: "Leave reviewdesk", Quit: true},
}

// View is the sidebar. Items are picked with the cursor or their number.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the sidebar with the cursor on Dashboard.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		items:  sections,
		width:  80,
		height: 24,
	}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and emits ViewChanged when a section is picked.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		pressed := msg.String()
		switch {
		case keymap.Matches(pressed, v.keys.Up):
			v.selected = max(v.selected-1, 0)
		case keymap.Matches(pressed, v.keys.Down):
			v.selected = min(v.selected+1, len(v.items)-1)
		case keymap.Matches(pressed, v.keys.Select):
			return v, v.choose(v.selected)
		case keymap.Matches(pressed, v.keys.Quit):
			return v, tea.Quit
		case len(pressed) == 1 && pressed[0] >= '1' && pressed[0] <= '9':
			if i := int(pressed[0] - '1'); i < len(v.items) {
				v.selected = i
				return v, v.choose(i)
			}
		}
	}
	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the sidebar.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("reviewdesk"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Applicant Review"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%d  %s", i+1, item.Label)
		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.items[v.selected].Description))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] move  [1-7] jump  [enter] open  [q] quit"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Items returns the sidebar sections.
func (v *View) Items() []Item {
	return v.items
}

// Selected returns the cursor index.
func (v *View) Selected() int {
	return v.selected
}
