package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	reset      key.Binding
	save       key.Binding
	focus      key.Binding
	shortBreak key.Binding
	longBreak  key.Binding
	custom     key.Binding
	increase   key.Binding
	decrease   key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" ", "space", "p"),
		key.WithHelp("space", "start/pause"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stop & save"),
	),
	focus: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "focus"),
	),
	shortBreak: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "short break"),
	),
	longBreak: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "long break"),
	),
	custom: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "custom"),
	),
	increase: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+/-", "adjust custom"),
	),
	decrease: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "shorter"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
