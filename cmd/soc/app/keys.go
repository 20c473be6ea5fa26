package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the client reacts to. It satisfies
// help.KeyMap so the footer can list the bindings.
type keyMap struct {
	Home    key.Binding
	Predict key.Binding
	About   key.Binding
	Results key.Binding
	Quit    key.Binding

	Next    key.Binding
	Prev    key.Binding
	Enter   key.Binding
	Dismiss key.Binding
	Random  key.Binding
	Submit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Home:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "home")),
		Predict: key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "predict")),
		About:   key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "about")),
		Results: key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "results")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "prev")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "dismiss")),
		Random:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "random")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Predict, k.About, k.Results, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.Next, k.Prev, k.Enter, k.Random, k.Submit},
	}
}

// formHelp lists the bindings active on the input view.
func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Random, k.Submit}
}
