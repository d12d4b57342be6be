package ui

import (
	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.switching {
		return nil
	}
	key := keyMsg.String()
	events.UI.Key(key)
	switch key {
	case "esc", "ctrl+c":
		m.store.Hide()
		return tea.Quit
	case "enter":
		return m.handleEnterKey()
	case "up", "ctrl+p", "shift+tab":
		m.store.Prev()
		return nil
	case "down", "ctrl+n", "tab":
		m.store.Next()
		return nil
	}
	return m.handleQueryInput(keyMsg)
}

// handleQueryInput feeds the key to the query field and re-filters when the
// text changed.
func (m *Model) handleQueryInput(msg tea.KeyMsg) tea.Cmd {
	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if after := m.query.Value(); after != before {
		m.errMsg = ""
		m.store.ChangeQuery(after)
	}
	return cmd
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	m.pending = nil
	if !m.store.Select() || m.pending == nil {
		return tea.Quit
	}
	entry := *m.pending
	m.pending = nil
	m.switching = true
	return m.switchCmd(entry)
}
