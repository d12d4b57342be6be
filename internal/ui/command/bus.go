package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation.
type Request struct {
	ID    string
	Label string
	Run   func(context.Context) error
}

// Result is delivered to the model once a request has run.
type Result struct {
	ID    string
	Label string
	Err   error
}

// Bus coordinates the execution of backend actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
// A request without a Run func yields a nil message.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		res := Result{ID: req.ID, Label: req.Label, Err: req.Run(ctx)}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", res))
		return res
	}
}
