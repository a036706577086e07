package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// SortOrder defines how endpoints are ordered on screen.
type SortOrder int

const (
	// SortByConfig keeps the order endpoints were configured in.
	SortByConfig SortOrder = iota
	// SortByName orders alphabetically by display name.
	SortByName
	// SortByState puts offline endpoints first, then awaiting, then online.
	SortByState
)

const sortOrderCount = 3

// String returns a human-readable label for the sort order.
func (s SortOrder) String() string {
	switch s {
	case SortByName:
		return "name"
	case SortByState:
		return "state"
	default:
		return "config"
	}
}

// Next cycles to the next sort order.
func (s SortOrder) Next() SortOrder {
	return SortOrder((int(s) + 1) % sortOrderCount)
}

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// KeyMap holds every binding the dashboard reacts to. It implements
// help.KeyMap so the overlay stays in sync with the handlers.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
	First  key.Binding
	Last   key.Binding
	Sort   key.Binding
	Detail key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close / back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous endpoint"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next endpoint"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first endpoint"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last endpoint"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort order"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "endpoint details"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.Sort, k.Detail}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.Sort, k.Detail, k.Close, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if key.Matches(msg, m.keys.Close) {
		switch {
		case m.showHelp:
			m.showHelp = false
		case m.viewMode == ViewDetail:
			m.viewMode = ViewList
		}
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.order)-1 {
			m.selected++
		}
		return true, nil

	case key.Matches(msg, m.keys.First):
		m.selected = 0
		return true, nil

	case key.Matches(msg, m.keys.Last):
		if len(m.order) > 0 {
			m.selected = len(m.order) - 1
		}
		return true, nil

	case key.Matches(msg, m.keys.Sort):
		m.sortOrder = m.sortOrder.Next()
		m.applySort()
		return true, nil

	case key.Matches(msg, m.keys.Detail):
		if len(m.order) > 0 {
			m.viewMode = ViewDetail
		}
		return true, nil
	}

	return false, nil
}
