package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Input  key.Binding
	Saved  key.Binding
	Back   key.Binding
	Save   key.Binding
	Retry  key.Binding
	Delete key.Binding
	Chip   key.Binding
	Quit   key.Binding
	Force  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "arriba"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "abajo"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←/h", "izquierda"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("→/l", "derecha"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "abrir"),
	),
	Input: key.NewBinding(
		key.WithKeys("tab", "/"),
		key.WithHelp("tab", "escribir tema"),
	),
	Saved: key.NewBinding(
		key.WithKeys("ctrl+s", "g"),
		key.WithHelp("g", "guardados"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b"),
		key.WithHelp("esc", "volver"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "guardar"),
	),
	Retry: key.NewBinding(
		key.WithKeys("enter", "r"),
		key.WithHelp("r", "intentar de nuevo"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "borrar"),
	),
	Chip: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "fuente"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "salir"),
	),
	Force: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// stateHelp adapts the key map to bubbles/help for one screen.
type stateHelp struct {
	state State
	focus focus
	saved bool
}

func (h stateHelp) ShortHelp() []key.Binding {
	switch h.state {
	case StateGreeting:
		if h.focus == focusInput {
			return []key.Binding{
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ir")),
				key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "temas")),
			}
		}
		return []key.Binding{keys.Select, keys.Input, keys.Saved, keys.Quit}
	case StateLoading:
		return []key.Binding{key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar"))}
	case StateResult:
		save := keys.Save
		if h.saved {
			save.SetEnabled(false)
		}
		return []key.Binding{keys.Back, save, keys.Chip, keys.Down}
	case StateError:
		return []key.Binding{keys.Retry, keys.Quit}
	case StateSavedList:
		return []key.Binding{keys.Select, keys.Delete, keys.Back}
	}
	return nil
}

func (h stateHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
