package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Home    key.Binding
	End     key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Lead    key.Binding
	Sidebar key.Binding
	Open    key.Binding
	Beats   key.Binding
	Inspect key.Binding
	Reload  key.Binding
	Close   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.ZoomIn, k.Lead, k.Sidebar, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Home, k.End},
		{k.ZoomIn, k.ZoomOut, k.Lead},
		{k.Sidebar, k.Open, k.Reload},
		{k.Beats, k.Inspect, k.Close},
		{k.Help, k.Quit},
	}
}

func defaultKeys() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "earlier")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "later")),
		Home:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "start")),
		End:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "end")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "amplitude")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "amplitude down")),
		Lead:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "toggle lead")),
		Sidebar: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "files")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/jump")),
		Beats:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "beats")),
		Inspect: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
