package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Slot    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Bag     key.Binding
	Switch  key.Binding
	Run     key.Binding
	Party   key.Binding
	Catalog key.Binding
	Lead    key.Binding
	Release key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Slot:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "choose")),
		Confirm: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "confirm")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Bag:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bag")),
		Switch:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
		Run:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run")),
		Party:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "party")),
		Catalog: key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "catalog")),
		Lead:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "make lead")),
		Release: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "release")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLine renders bindings as a one-line hint.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
