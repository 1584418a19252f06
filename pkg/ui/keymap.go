package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares the dashboard bindings. Chart popovers stay on plain
// digit keys and are handled inline.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Toggle key.Binding
	Extend key.Binding
	Panel  key.Binding
	Escape key.Binding
	Mode   key.Binding
	Copy   key.Binding
	Reload key.Binding
	Group  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Select: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select cell")),
	Toggle: key.NewBinding(key.WithKeys("ctrl+@"), key.WithHelp("ctrl+space", "toggle cell")),
	Extend: key.NewBinding(key.WithKeys("shift+space", "V"), key.WithHelp("shift+space", "extend range")),
	Panel:  key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "computation panel")),
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close/clear")),
	Mode:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle mode")),
	Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy result")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload data")),
	Group:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "fold group")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
