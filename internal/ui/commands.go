package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/logging"
	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
	"github.com/atomicstack/nvim-switcher/internal/picker"
	"github.com/atomicstack/nvim-switcher/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// buffersLoadedMsg carries the listing that opens the picker.
type buffersLoadedMsg struct {
	buffers []nvim.Buffer
	cwd     string
	err     error
}

func (m *Model) loadBuffersCmd() tea.Cmd {
	source, br := m.source, m.bridge
	return func() tea.Msg {
		if source == nil {
			return buffersLoadedMsg{err: fmt.Errorf("load buffers: %w", nvim.ErrBackendUnavailable)}
		}
		cwd, err := bridge.Call(br, "getcwd", source.CurrentWorkingDirectory)
		if err != nil {
			// Paths are still shown, just without cwd-relative shortening.
			logging.Error(fmt.Errorf("resolve cwd: %w", err))
			cwd = ""
		}
		buffers, err := bridge.Call(br, "buffers", source.PickerBuffers)
		if err != nil {
			return buffersLoadedMsg{cwd: cwd, err: fmt.Errorf("load buffers: %w", err)}
		}
		return buffersLoadedMsg{buffers: buffers, cwd: cwd}
	}
}

func (m *Model) handleBuffersLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(buffersLoadedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.cwd = loaded.cwd
	if loaded.err != nil {
		logging.Error(loaded.err)
		events.Action.Error(loaded.err)
		m.errMsg = loaded.err.Error()
	}
	m.store.Show(loaded.buffers, loaded.cwd)
	events.UI.Loaded(len(loaded.buffers), loaded.cwd)
	// Keep anything typed while the listing was in flight.
	if q := m.query.Value(); q != "" {
		m.store.ChangeQuery(q)
	}
	return nil
}

func (m *Model) switchCmd(entry picker.Entry) tea.Cmd {
	source, br := m.source, m.bridge
	return m.bus.Execute(context.Background(), command.Request{
		ID:    fmt.Sprintf("switch:%d", entry.Handle),
		Label: entry.DisplayName,
		Run: func(ctx context.Context) error {
			if source == nil {
				return nvim.ErrBackendUnavailable
			}
			_, err := bridge.CallContext(ctx, br, "switch", func(ctx context.Context) (struct{}, error) {
				return struct{}{}, source.SwitchBuffer(ctx, entry.Handle)
			})
			return err
		},
	})
}

// handleCommandResultMsg ends the program once the switch has been attempted.
// Failures are logged only.
func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	m.switching = false
	if result.Err != nil {
		err := fmt.Errorf("switch to %s: %w", result.Label, result.Err)
		logging.Error(err)
		events.Action.Error(err)
		return tea.Quit
	}
	events.Action.Success(result.Label)
	return tea.Quit
}
