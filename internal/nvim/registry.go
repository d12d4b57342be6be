package nvim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// maxConcurrentFetches bounds the per-buffer metadata requests in flight.
	maxConcurrentFetches = 16
	// sharedRoundTimeout bounds a coalesced listing once its callers are gone.
	sharedRoundTimeout = 10 * time.Second
)

// Registry answers buffer and window queries against a connected editor.
// Every call reads authoritative state; nothing is cached between calls.
type Registry struct {
	client Client
	flight singleflight.Group
}

// NewRegistry wraps an existing client.
func NewRegistry(client Client) *Registry {
	return &Registry{client: client}
}

// Connect resolves address and dials the editor.
func Connect(address string) (*Registry, error) {
	resolved, err := ResolveAddress(address)
	if err != nil {
		return nil, err
	}
	client, err := newClient(resolved)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w: %w", resolved, ErrBackendUnavailable, err)
	}
	return NewRegistry(client), nil
}

// Close releases the underlying connection.
func (r *Registry) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

// ListOpenBuffers returns every listed buffer in the order the editor reports
// them. Per-buffer metadata is fetched concurrently; concurrent callers share
// one round of requests. The round is not tied to any one caller's context:
// each caller stops waiting on its own ctx while the round runs for the rest.
func (r *Registry) ListOpenBuffers(ctx context.Context) ([]Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := r.flight.DoChan("buffers", func() (interface{}, error) {
		roundCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedRoundTimeout)
		defer cancel()
		return r.listOpenBuffers(roundCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.([]Buffer)
		out := make([]Buffer, len(shared))
		copy(out, shared)
		return out, nil
	}
}

func (r *Registry) listOpenBuffers(ctx context.Context) ([]Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := r.client.Buffers()
	if err != nil {
		return nil, classify("list buffers", err)
	}
	current, err := r.client.CurrentBuffer()
	if err != nil {
		return nil, classify("current buffer", err)
	}

	out := make([]Buffer, len(handles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, handle := range handles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name, err := r.client.BufferName(handle)
			if err != nil {
				return classify(fmt.Sprintf("buffer %d name", handle), err)
			}
			var modified bool
			if err := r.client.BufferOption(handle, "modified", &modified); err != nil {
				return classify(fmt.Sprintf("buffer %d modified", handle), err)
			}
			out[i] = Buffer{
				Handle:   handle,
				Path:     name,
				Modified: modified,
				Current:  handle == current,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// PickerBuffers lists open buffers excluding the one currently displayed.
func (r *Registry) PickerBuffers(ctx context.Context) ([]Buffer, error) {
	all, err := r.ListOpenBuffers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Buffer, 0, len(all))
	for _, b := range all {
		if b.Current {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// CurrentWindow returns the focused window.
func (r *Registry) CurrentWindow(ctx context.Context) (WindowHandle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	win, err := r.client.CurrentWindow()
	if err != nil {
		return 0, classify("current window", err)
	}
	return win, nil
}

// CurrentBuffer returns the buffer shown in the focused window.
func (r *Registry) CurrentBuffer(ctx context.Context) (BufferHandle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	buf, err := r.client.CurrentBuffer()
	if err != nil {
		return 0, classify("current buffer", err)
	}
	return buf, nil
}

// IsTerminal reports whether buffer is a terminal buffer.
func (r *Registry) IsTerminal(ctx context.Context, buffer BufferHandle) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var buftype string
	if err := r.client.BufferOption(buffer, "buftype", &buftype); err != nil {
		return false, classify(fmt.Sprintf("buffer %d buftype", buffer), err)
	}
	return buftype == "terminal", nil
}

// TerminalBuffers returns the terminal buffers in editor order.
func (r *Registry) TerminalBuffers(ctx context.Context) ([]BufferHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handles, err := r.client.Buffers()
	if err != nil {
		return nil, classify("list buffers", err)
	}
	flags := make([]bool, len(handles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, handle := range handles {
		g.Go(func() error {
			ok, err := r.IsTerminal(gctx, handle)
			if err != nil {
				return err
			}
			flags[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]BufferHandle, 0, len(handles))
	for i, handle := range handles {
		if flags[i] {
			out = append(out, handle)
		}
	}
	return out, nil
}

// CurrentWorkingDirectory returns the editor's working directory.
func (r *Registry) CurrentWorkingDirectory(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var cwd string
	if err := r.client.Call("getcwd", &cwd); err != nil {
		return "", classify("getcwd", err)
	}
	return cwd, nil
}

// SwitchBuffer makes buffer current in the focused window.
func (r *Registry) SwitchBuffer(ctx context.Context, buffer BufferHandle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Command(fmt.Sprintf("buffer %d", buffer)); err != nil {
		return classify(fmt.Sprintf("switch to buffer %d", buffer), err)
	}
	return nil
}

// Notify shows message in the editor. The editor has no button UI, so action
// items are appended to the text.
func (r *Registry) Notify(ctx context.Context, message string, severity Severity, items []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.client.Notify(notifyText(message, items), severity.logLevel(), map[string]interface{}{}); err != nil {
		return classify("notify", err)
	}
	return nil
}

// Snapshot reads the current window, its buffer and the terminal set.
func (r *Registry) Snapshot(ctx context.Context) (Snapshot, error) {
	win, err := r.CurrentWindow(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	buf, err := r.CurrentBuffer(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	isTerm, err := r.IsTerminal(ctx, buf)
	if err != nil {
		return Snapshot{}, err
	}
	terms, err := r.TerminalBuffers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Window: win, Buffer: buf, BufferIsTerminal: isTerm, Terminals: terms}, nil
}

func notifyText(message string, items []string) string {
	if len(items) == 0 {
		return message
	}
	var b strings.Builder
	b.WriteString(message)
	for _, item := range items {
		b.WriteString(" [")
		b.WriteString(item)
		b.WriteString("]")
	}
	return b.String()
}
