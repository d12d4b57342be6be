// Package facade exposes the window surface of the editor API: synchronous
// projections over the backend, notifications, event subscriptions and stubs
// for operations the backend cannot provide.
package facade

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/eventhub"
	"github.com/atomicstack/nvim-switcher/internal/logging"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
)

// Backend is the editor state the facade projects.
type Backend interface {
	CurrentWindow(ctx context.Context) (nvim.WindowHandle, error)
	CurrentBuffer(ctx context.Context) (nvim.BufferHandle, error)
	IsTerminal(ctx context.Context, buffer nvim.BufferHandle) (bool, error)
	TerminalBuffers(ctx context.Context) ([]nvim.BufferHandle, error)
	Notify(ctx context.Context, message string, severity nvim.Severity, items []string) error
}

// Window is the facade instance. It is safe for concurrent use.
type Window struct {
	backend Backend
	bridge  *bridge.Bridge
	hub     *eventhub.Hub

	severityRouting bool
	notifies        sync.WaitGroup
}

type Option func(*Window)

// WithSeverityRouting sends warnings and errors with their own severity
// instead of the informational level used by default.
func WithSeverityRouting(enabled bool) Option {
	return func(w *Window) {
		w.severityRouting = enabled
	}
}

// New creates a facade over backend. Calls go through br; subscriptions
// register into hub.
func New(backend Backend, br *bridge.Bridge, hub *eventhub.Hub, opts ...Option) *Window {
	if br == nil {
		br = bridge.New()
	}
	if hub == nil {
		hub = eventhub.New()
	}
	w := &Window{backend: backend, bridge: br, hub: hub}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Hub returns the event hub subscriptions register into.
func (w *Window) Hub() *eventhub.Hub {
	return w.hub
}

// Close waits for outstanding notifications to be delivered.
func (w *Window) Close() {
	w.notifies.Wait()
}

// State reports the window state. The backend has no focus tracking, so the
// window is always considered focused.
func (w *Window) State() WindowState {
	return WindowState{Focused: true}
}

// ActiveTextEditor returns the editor for the focused window, or nil when the
// backend cannot answer.
func (w *Window) ActiveTextEditor() *TextEditor {
	win, err := bridge.Call(w.bridge, "window.activeTextEditor", w.backend.CurrentWindow)
	if err != nil {
		logging.Error(fmt.Errorf("window.activeTextEditor: %w", err))
		return nil
	}
	return NewTextEditor(win)
}

// VisibleTextEditors returns the focused window only; other windows are not
// reachable through the backend.
func (w *Window) VisibleTextEditors() []*TextEditor {
	win, err := bridge.Call(w.bridge, "window.visibleTextEditors", w.backend.CurrentWindow)
	if err != nil {
		logging.Error(fmt.Errorf("window.visibleTextEditors: %w", err))
		return []*TextEditor{}
	}
	return []*TextEditor{NewTextEditor(win)}
}

// ActiveTerminal returns the terminal shown in the focused window, or nil
// when that buffer is not a terminal.
func (w *Window) ActiveTerminal() *Terminal {
	type active struct {
		buffer   nvim.BufferHandle
		terminal bool
	}
	got, err := bridge.Call(w.bridge, "window.activeTerminal", func(ctx context.Context) (active, error) {
		buf, err := w.backend.CurrentBuffer(ctx)
		if err != nil {
			return active{}, err
		}
		ok, err := w.backend.IsTerminal(ctx, buf)
		if err != nil {
			return active{}, err
		}
		return active{buffer: buf, terminal: ok}, nil
	})
	if err != nil {
		logging.Error(fmt.Errorf("window.activeTerminal: %w", err))
		return nil
	}
	if !got.terminal {
		return nil
	}
	return NewTerminal(got.buffer)
}

// Terminals returns every terminal buffer.
func (w *Window) Terminals() []*Terminal {
	bufs, err := bridge.Call(w.bridge, "window.terminals", w.backend.TerminalBuffers)
	if err != nil {
		logging.Error(fmt.Errorf("window.terminals: %w", err))
		return []*Terminal{}
	}
	out := make([]*Terminal, len(bufs))
	for i, b := range bufs {
		out[i] = NewTerminal(b)
	}
	return out
}
