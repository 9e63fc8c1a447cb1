// Package placeholder renders navigation pages that have no content yet.
package placeholder

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/styles"
)

// View is a static page with a title and a short note.
type View struct {
	styles *styles.Styles
	title  string
	note   string
	width  int
	height int
}

// NewView creates a placeholder page.
func NewView(s *styles.Styles, title, note string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, title: title, note: note, width: 80, height: 24}
}

// Init implements the view contract.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update returns to the menu on esc.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// View renders the page.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render(v.note))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[esc] Back"))
	return b.String()
}

// Title returns the page title.
func (v *View) Title() string {
	return v.title
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
