package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the deck keybindings.
type keyMap struct {
	Toggle    key.Binding
	Open      key.Binding
	Favorite  key.Binding
	Grab      key.Binding
	Preview   key.Binding
	PresetFav key.Binding
	Snapshot  key.Binding
	Snapshots key.Binding
	Rebuild   key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "tab"),
			key.WithHelp("enter", "fold"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Grab: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		PresetFav: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorite preset"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snapshot"),
		),
		Snapshots: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "apply snapshot"),
		),
		Rebuild: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rebuild"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Open, k.Favorite, k.Grab, k.Preview, k.Snapshot, k.Rebuild, k.Quit}
}

// FullHelp returns all bindings grouped in columns.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Open, k.Favorite, k.PresetFav},
		{k.Grab, k.Preview, k.Snapshot, k.Snapshots},
		{k.Rebuild, k.Quit},
	}
}
