package nvim

import (
	gonvim "github.com/neovim/go-client/nvim"
)

// BufferHandle identifies a buffer for the lifetime of the editor session.
type BufferHandle = gonvim.Buffer

// WindowHandle identifies an editor window.
type WindowHandle = gonvim.Window

// Buffer is a single open buffer as reported by the editor.
type Buffer struct {
	Handle   BufferHandle
	Path     string
	Modified bool
	Current  bool
}

// Snapshot captures the window and terminal state observed in one poll.
type Snapshot struct {
	Window           WindowHandle
	Buffer           BufferHandle
	BufferIsTerminal bool
	Terminals        []BufferHandle
}

// Severity selects the notification level passed to the editor.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

func (s Severity) logLevel() gonvim.LogLevel {
	switch s {
	case SeverityWarning:
		return gonvim.LogWarnLevel
	case SeverityError:
		return gonvim.LogErrorLevel
	default:
		return gonvim.LogInfoLevel
	}
}

// Client is the subset of the go-client API the registry relies on.
type Client interface {
	Buffers() ([]gonvim.Buffer, error)
	BufferName(buffer gonvim.Buffer) (string, error)
	BufferOption(buffer gonvim.Buffer, name string, result interface{}) error
	CurrentBuffer() (gonvim.Buffer, error)
	CurrentWindow() (gonvim.Window, error)
	Call(fname string, result interface{}, args ...interface{}) error
	Command(cmd string) error
	Notify(msg string, logLevel gonvim.LogLevel, opts map[string]interface{}) error
	Close() error
}

var newClient = func(address string) (Client, error) {
	v, err := gonvim.Dial(address)
	if err != nil {
		return nil, err
	}
	return v, nil
}
