package tui

import "charm.land/bubbles/v2/key"

// keyMap lists the dashboard keybindings.
type keyMap struct {
	Refresh    key.Binding
	Dismiss    key.Binding
	DismissAll key.Binding
	NextTab    key.Binding
	Search     key.Binding
	Clear      key.Binding
	Top        key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Dismiss:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		DismissAll: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "dismiss all")),
		NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// shortHelp returns the bindings shown in the footer.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Dismiss, k.DismissAll, k.NextTab, k.Search, k.Clear, k.Top, k.Quit}
}

// searchKeys are active while the search input has focus.
type searchKeys struct {
	Submit key.Binding
	Cancel key.Binding
}

func defaultSearchKeys() searchKeys {
	return searchKeys{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
