package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	List      key.Binding
	Analytics key.Binding
	Calendar  key.Binding
	Schedule  key.Binding

	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding

	Sort      key.Binding
	Direction key.Binding
	Filter    key.Binding
	Clear     key.Binding
	Open      key.Binding
	Edit      key.Binding
	Toggle    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		List:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "list")),
		Analytics: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "analytics")),
		Calendar:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "calendar")),
		Schedule:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "schedule")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),

		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort field")),
		Direction: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "sort direction")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear all")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Save:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.List, k.Analytics, k.Calendar, k.Schedule, k.Sort, k.Direction, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.List, k.Analytics, k.Calendar, k.Schedule},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.PrevMonth, k.NextMonth},
		{k.Sort, k.Direction, k.Filter, k.Clear},
		{k.Open, k.Edit, k.Back, k.Help, k.Quit},
	}
}
