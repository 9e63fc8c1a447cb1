// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back closes the detail panel or returns to the menu.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select opens the highlighted applicant.
	Select key.Binding

	// Search focuses the search box.
	Search key.Binding

	// ToggleApproved shows or hides approved applications.
	ToggleApproved key.Binding

	// NextPage and PrevPage move through the list.
	NextPage key.Binding
	PrevPage key.Binding

	// Comment focuses the comments box of the open applicant.
	Comment key.Binding

	// Approve and Reject decide the open applicant.
	Approve key.Binding
	Reject  key.Binding

	// Reload re-reads the backing source.
	Reload key.Binding

	// Done leaves a text box.
	Done key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ToggleApproved: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle approved"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "]"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "["),
			key.WithHelp("←/h", "prev page"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Approve: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reject"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Done: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "done"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ListHelp returns keybindings for browsing the applicant list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Select, k.Search, k.ToggleApproved, k.PrevPage, k.NextPage, k.Back}
}

// DetailHelp returns keybindings while an applicant is open.
func (k *KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.Comment, k.Approve, k.Reject, k.Back}
}

// InputHelp returns keybindings while a text box has focus.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Done}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.PrevPage, k.NextPage},
		{k.Search, k.ToggleApproved, k.Reload},
		{k.Comment, k.Approve, k.Reject, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
