package facade

import "github.com/atomicstack/nvim-switcher/internal/nvim"

// WindowState describes the editor window as a whole.
type WindowState struct {
	Focused bool `json:"focused" yaml:"focused"`
}

// TextEditor is a handle for an editor window.
type TextEditor struct {
	Window nvim.WindowHandle `json:"window" yaml:"window"`
}

// NewTextEditor wraps a window handle.
func NewTextEditor(win nvim.WindowHandle) *TextEditor {
	return &TextEditor{Window: win}
}

// Terminal is a handle for a terminal buffer.
type Terminal struct {
	Buffer nvim.BufferHandle `json:"buffer" yaml:"buffer"`
}

// NewTerminal wraps a terminal buffer handle.
func NewTerminal(buf nvim.BufferHandle) *Terminal {
	return &Terminal{Buffer: buf}
}

// TextEditorEvent is the payload of the per-editor change events.
type TextEditorEvent struct {
	Editor *TextEditor `json:"editor" yaml:"editor"`
}

// Disposable releases a registration.
type Disposable interface {
	Dispose()
}

type noopDisposable struct{}

func (noopDisposable) Dispose() {}
