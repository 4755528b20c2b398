// Package keymap defines keybindings for the shell.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the shell.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Comment activates or toggles the comment tool.
	Comment key.Binding

	// Screenshot activates or toggles the screenshot tool.
	Screenshot key.Binding

	// Highlight activates or toggles the highlight tool.
	Highlight key.Binding

	// Sidebar toggles the annotations sidebar panel.
	Sidebar key.Binding

	// Escape cancels the current operation or deactivates the active tool.
	Escape key.Binding

	// Up navigates up in the card list.
	Up key.Binding

	// Down navigates down in the card list.
	Down key.Binding

	// Select confirms the selected card.
	Select key.Binding

	// Delete requests deletion of the selected card's annotation.
	Delete key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment tool"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "screenshot tool"),
		),
		Highlight: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "highlight tool"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle sidebar"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
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
			key.WithHelp("enter", "select card"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "backspace"),
			key.WithHelp("d", "delete annotation"),
		),
	}
}
