// Package keymap defines keybindings for the merge wizard.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the wizard keybindings.
type KeyMap struct {
	// Up moves the cursor up in a choice list.
	Up key.Binding

	// Down moves the cursor down in a choice list.
	Down key.Binding

	// Submit accepts the current answer.
	Submit key.Binding

	// Yes answers a confirmation with yes.
	Yes key.Binding

	// No answers a confirmation with no.
	No key.Binding

	// Abort leaves the wizard without answering.
	Abort key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "abort"),
		),
	}
}

// ShortHelp returns the bindings shown in the wizard footer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Submit, k.Abort}
}
