package facade

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/eventhub"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
	testutil "github.com/atomicstack/nvim-switcher/internal/testutil"
)

type sentNotification struct {
	message  string
	severity nvim.Severity
	items    []string
}

type fakeBackend struct {
	mu sync.Mutex

	window    nvim.WindowHandle
	buffer    nvim.BufferHandle
	terminals map[nvim.BufferHandle]bool
	order     []nvim.BufferHandle
	err       error
	block     chan struct{}

	sent []sentNotification
}

func (f *fakeBackend) wait(ctx context.Context) error {
	if f.block == nil {
		return f.err
	}
	select {
	case <-f.block:
	case <-ctx.Done():
		return ctx.Err()
	}
	return f.err
}

func (f *fakeBackend) CurrentWindow(ctx context.Context) (nvim.WindowHandle, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	return f.window, nil
}

func (f *fakeBackend) CurrentBuffer(ctx context.Context) (nvim.BufferHandle, error) {
	if err := f.wait(ctx); err != nil {
		return 0, err
	}
	return f.buffer, nil
}

func (f *fakeBackend) IsTerminal(ctx context.Context, buffer nvim.BufferHandle) (bool, error) {
	return f.terminals[buffer], nil
}

func (f *fakeBackend) TerminalBuffers(ctx context.Context) ([]nvim.BufferHandle, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	out := []nvim.BufferHandle{}
	for _, b := range f.order {
		if f.terminals[b] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBackend) Notify(ctx context.Context, message string, severity nvim.Severity, items []string) error {
	if err := f.wait(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{message: message, severity: severity, items: items})
	return nil
}

func (f *fakeBackend) notifications() []sentNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentNotification(nil), f.sent...)
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		window:    1000,
		buffer:    3,
		terminals: map[nvim.BufferHandle]bool{5: true, 8: true},
		order:     []nvim.BufferHandle{1, 3, 5, 8},
	}
}

func TestStateIsAlwaysFocused(t *testing.T) {
	w := New(newBackend(), nil, nil)
	if !w.State().Focused {
		t.Fatalf("expected focused window state")
	}
}

func TestActiveAndVisibleTextEditors(t *testing.T) {
	w := New(newBackend(), nil, nil)
	editor := w.ActiveTextEditor()
	if editor == nil || editor.Window != 1000 {
		t.Fatalf("expected editor for window 1000, got %#v", editor)
	}
	visible := w.VisibleTextEditors()
	if len(visible) != 1 || visible[0].Window != 1000 {
		t.Fatalf("expected only the current window, got %#v", visible)
	}
}

func TestActiveTerminal(t *testing.T) {
	backend := newBackend()
	w := New(backend, nil, nil)
	if term := w.ActiveTerminal(); term != nil {
		t.Fatalf("expected no active terminal for a file buffer, got %#v", term)
	}
	backend.buffer = 5
	if term := w.ActiveTerminal(); term == nil || term.Buffer != 5 {
		t.Fatalf("expected terminal 5, got %#v", term)
	}
}

func TestTerminals(t *testing.T) {
	terms := New(newBackend(), nil, nil).Terminals()
	if len(terms) != 2 || terms[0].Buffer != 5 || terms[1].Buffer != 8 {
		t.Fatalf("expected terminals [5 8], got %#v", terms)
	}
}

func TestGettersDegradeOnBackendError(t *testing.T) {
	readLog := testutil.CaptureLog(t)
	backend := newBackend()
	backend.err = nvim.ErrBackendUnavailable
	w := New(backend, nil, nil)

	if w.ActiveTextEditor() != nil {
		t.Fatalf("expected nil editor on failure")
	}
	if got := w.VisibleTextEditors(); len(got) != 0 {
		t.Fatalf("expected no visible editors on failure, got %#v", got)
	}
	if w.ActiveTerminal() != nil {
		t.Fatalf("expected nil terminal on failure")
	}
	if got := w.Terminals(); len(got) != 0 {
		t.Fatalf("expected no terminals on failure, got %#v", got)
	}
	if n := testutil.CountLines(readLog(), "backend unavailable"); n != 4 {
		t.Fatalf("expected 4 logged failures, got %d", n)
	}
}

func TestGetterTimesOut(t *testing.T) {
	readLog := testutil.CaptureLog(t)
	backend := newBackend()
	backend.block = make(chan struct{})
	br := bridge.New(bridge.WithTimeout(20 * time.Millisecond))
	w := New(backend, br, nil)

	start := time.Now()
	if w.ActiveTextEditor() != nil {
		t.Fatalf("expected nil editor on timeout")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected getter to give up quickly, took %s", elapsed)
	}
	br.Wait()
	if br.Pending() != 0 {
		t.Fatalf("expected no pending requests, got %d", br.Pending())
	}
	if !strings.Contains(readLog(), bridge.ErrBackendTimeout.Error()) {
		t.Fatalf("expected timeout in log, got %q", readLog())
	}
}

func TestSubscriptionsReceivePublishedEvents(t *testing.T) {
	hub := eventhub.New()
	w := New(newBackend(), nil, hub)
	var opened []nvim.BufferHandle
	sub := w.OnDidOpenTerminal(func(term *Terminal) { opened = append(opened, term.Buffer) })

	eventhub.Publish(hub, TopicOpenTerminal, NewTerminal(7))
	sub.Dispose()
	sub.Dispose()
	eventhub.Publish(hub, TopicOpenTerminal, NewTerminal(9))

	if len(opened) != 1 || opened[0] != 7 {
		t.Fatalf("expected one open event for 7, got %v", opened)
	}
	if hub.Count(TopicOpenTerminal.Name) != 0 {
		t.Fatalf("expected no residual registrations")
	}
}

func TestEverySubscriptionReturnsDisposable(t *testing.T) {
	hub := eventhub.New()
	w := New(newBackend(), nil, hub)
	subs := []Disposable{
		w.OnDidChangeWindowState(func(WindowState) {}),
		w.OnDidChangeActiveTextEditor(func(*TextEditor) {}),
		w.OnDidChangeVisibleTextEditors(func([]*TextEditor) {}),
		w.OnDidChangeTextEditorSelection(func(TextEditorEvent) {}),
		w.OnDidChangeTextEditorVisibleRanges(func(TextEditorEvent) {}),
		w.OnDidChangeTextEditorOptions(func(TextEditorEvent) {}),
		w.OnDidChangeTextEditorViewColumn(func(TextEditorEvent) {}),
		w.OnDidChangeActiveTerminal(func(*Terminal) {}),
		w.OnDidOpenTerminal(func(*Terminal) {}),
		w.OnDidCloseTerminal(func(*Terminal) {}),
	}
	names := []string{
		TopicWindowState.Name, TopicActiveTextEditor.Name, TopicVisibleTextEditors.Name,
		TopicTextEditorSelection.Name, TopicTextEditorVisibleRanges.Name, TopicTextEditorOptions.Name,
		TopicTextEditorViewColumn.Name, TopicActiveTerminal.Name, TopicOpenTerminal.Name, TopicCloseTerminal.Name,
	}
	for i, name := range names {
		if hub.Count(name) != 1 {
			t.Fatalf("expected one listener for %s, got %d", name, hub.Count(name))
		}
		subs[i].Dispose()
		if hub.Count(name) != 0 {
			t.Fatalf("expected listener for %s to be removed", name)
		}
	}
}

func TestErrorsAreSentinels(t *testing.T) {
	_, err := NormalizeMessage("x", 3)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}
