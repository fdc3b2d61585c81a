package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

type keyMap struct {
	Draw     key.Binding
	Forward  key.Binding
	Backward key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Restart  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Draw: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "draw a head, again to move"),
		),
		Forward: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "force forward"),
		),
		Backward: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "force backward"),
		),
		Left: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "force left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "force right"),
		),
		Up: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "force up"),
		),
		Down: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "force down"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// forced pairs each forcing binding with its direction.
func (k keyMap) forced() []struct {
	binding   key.Binding
	direction engine.Direction
} {
	return []struct {
		binding   key.Binding
		direction engine.Direction
	}{
		{k.Forward, engine.Forward},
		{k.Backward, engine.Backward},
		{k.Left, engine.Left},
		{k.Right, engine.Right},
		{k.Up, engine.Up},
		{k.Down, engine.Down},
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draw, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Draw, k.Restart, k.Quit},
		{k.Forward, k.Backward, k.Left},
		{k.Right, k.Up, k.Down},
	}
}
