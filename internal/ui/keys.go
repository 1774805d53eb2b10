package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Log        key.Binding
	ToggleView key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	New        key.Binding
	Refresh    key.Binding
	Plan       key.Binding
	ClearPlan  key.Binding
	Goals      key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	Frequency  key.Binding
	SwitchPane key.Binding
	Theme      key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Log:        key.NewBinding(key.WithKeys("l", " "), key.WithHelp("l", "log today")),
	ToggleView: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "week/month")),
	PrevMonth:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
	NextMonth:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
	New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new habit")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Plan:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "plan my day")),
	ClearPlan:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear plan")),
	Goals:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "edit goals")),
	Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Frequency:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "frequency")),
	SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Dismiss:    key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "dismiss")),
	Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
}

// helpKeys adapts the bindings relevant to one pane to help.KeyMap.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding { return h }

func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

var (
	dashboardHelp = helpKeys{keys.Up, keys.Down, keys.Log, keys.ToggleView, keys.PrevMonth, keys.NextMonth, keys.New, keys.Refresh, keys.SwitchPane, keys.Theme, keys.Quit}
	assistantHelp = helpKeys{keys.Plan, keys.ClearPlan, keys.Goals, keys.Refresh, keys.SwitchPane, keys.Theme, keys.Quit}
	formHelp      = helpKeys{keys.Submit, keys.Frequency, keys.Cancel}
	goalsHelp     = helpKeys{keys.Submit, keys.Cancel}
)
