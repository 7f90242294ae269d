package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the dashboard. It also feeds the help
// view.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	NextDetail key.Binding
	PrevDetail key.Binding
	Mark       key.Binding
	ToggleAll  key.Binding
	Start      key.Binding
	Stop       key.Binding
	Restart    key.Binding
	Remove     key.Binding
	Prune      key.Binding
	Shell      key.Binding
	Fullscreen key.Binding
	Refresh    key.Binding
	CopyLogs   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "navigate up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "navigate down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab/l", "next entity tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("s-tab/h", "previous entity tab"),
		),
		NextDetail: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next detail tab"),
		),
		PrevDetail: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous detail tab"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark for batch"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "mark/unmark all"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Prune: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "prune unused"),
		),
		Shell: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "exec shell"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "fullscreen logs"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("f5", "ctrl+r"),
			key.WithHelp("f5", "full refresh"),
		),
		CopyLogs: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy logs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
	}
}

// FullHelp returns bindings for the help overlay, one inner slice per column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab, k.NextDetail, k.PrevDetail},
		{k.Mark, k.ToggleAll, k.Start, k.Stop, k.Restart, k.Remove},
		{k.Prune, k.Shell, k.Fullscreen, k.Refresh, k.CopyLogs},
		{k.Help, k.Quit},
	}
}

// ShortHelp returns the minimal set shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}
