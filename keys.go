package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Navigate  key.Binding
	Select    key.Binding
	Back      key.Binding
	Toggle    key.Binding
	Reload    key.Binding
	Search    key.Binding
	Alerts    key.Binding
	Cancel    key.Binding
	Catalog   key.Binding
	Export    key.Binding
	Theme     key.Binding
	StartScan key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Navigate:  key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "navigate")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "mark file")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan dir")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Alerts:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "email alerts")),
		Cancel:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel alerts")),
		Catalog:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "subsidies")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		StartScan: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start scan")),
	}
}

// footerBindings picks the help entries for the active context.
func (m model) footerBindings() []key.Binding {
	if m.modal != modalNone {
		switch m.modal {
		case modalAlert:
			return []key.Binding{
				key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "field")),
				key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "subscribe")),
				m.keys.Back,
			}
		case modalCatalog:
			return []key.Binding{m.keys.Navigate, m.keys.Select, m.keys.Back}
		default:
			return []key.Binding{m.keys.Back}
		}
	}
	switch m.phase {
	case phaseUpload:
		return []key.Binding{m.keys.Navigate, m.keys.Toggle, m.keys.StartScan, m.keys.Reload, m.keys.Theme, m.keys.Quit}
	case phaseScanning:
		return []key.Binding{m.keys.Quit}
	default:
		if m.filtering {
			return []key.Binding{
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
				key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
			}
		}
		return []key.Binding{
			m.keys.Navigate, m.keys.Select, m.keys.Search, m.keys.Alerts,
			m.keys.Catalog, m.keys.Export, m.keys.Theme, m.keys.Quit,
		}
	}
}
