// Package status renders the one-line bar under the dashboard.
package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/tui/styles"
)

// State is what the bar reports on its left side.
type State string

const (
	StateReady   State = "ready"
	StateSaving  State = "saving"
	StateLoading State = "loading"
	StateError   State = "error"
	StateWarning State = "warning"
)

// placeholders are shown when no message is set.
var placeholders = map[State]string{
	StateReady:   "Ready",
	StateSaving:  "Saving...",
	StateLoading: "Loading...",
	StateError:   "Error",
}

// Bar shows the review state on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	hints   []key.Binding
	width   int
}

// NewBar returns a ready bar, 80 columns wide.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// Init is a no-op.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the owning view drives the bar through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the bar padded to its width.
func (s *Bar) View() string {
	left, right := s.label(), s.hintText()
	gap := max(1, s.width-lipgloss.Width(left)-lipgloss.Width(right))
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) label() string {
	text := s.message
	if text == "" {
		text = placeholders[s.state]
	}

	switch s.state {
	case StateError:
		if s.message != "" {
			text = "Error: " + s.message
		}
		return s.styles.Error.Render(text)
	case StateWarning:
		return s.styles.Warning.Render(text)
	case StateSaving, StateLoading:
		return s.styles.Muted.Render(text)
	}
	if s.message == "" {
		return s.styles.Muted.Render(text)
	}
	return s.styles.Normal.Render(text)
}

func (s *Bar) hintText() string {
	bindings := s.hints
	if len(bindings) == 0 {
		bindings = s.keymap.ShortHelp()
	}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.Help().Key + ": " + b.Help().Desc
	}
	return s.styles.Muted.Render(strings.Join(parts, " | "))
}

// SetState sets the state.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the state.
func (s *Bar) State() State { return s.state }

// SetMessage sets the text shown instead of the state placeholder.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the message.
func (s *Bar) Message() string { return s.message }

// SetHints replaces the key hints. Nil restores the short help.
func (s *Bar) SetHints(bindings []key.Binding) { s.hints = bindings }

// SetWidth sets the width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Width returns the width.
func (s *Bar) Width() int { return s.width }

// Clear returns the bar to Ready with no message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
