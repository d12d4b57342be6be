package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
	"github.com/atomicstack/nvim-switcher/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeSource struct {
	mu        sync.Mutex
	buffers   []nvim.Buffer
	cwd       string
	listErr   error
	cwdErr    error
	switchErr error
	block     chan struct{}
	switched  []nvim.BufferHandle
}

func (f *fakeSource) PickerBuffers(ctx context.Context) ([]nvim.Buffer, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]nvim.Buffer(nil), f.buffers...), nil
}

func (f *fakeSource) CurrentWorkingDirectory(context.Context) (string, error) {
	return f.cwd, f.cwdErr
}

func (f *fakeSource) SwitchBuffer(_ context.Context, buffer nvim.BufferHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.switched = append(f.switched, buffer)
	return f.switchErr
}

func (f *fakeSource) Switched() []nvim.BufferHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]nvim.BufferHandle(nil), f.switched...)
}

func sampleSource() *fakeSource {
	return &fakeSource{
		cwd: "/work",
		buffers: []nvim.Buffer{
			{Handle: 2, Path: "/work/cmd/main.go"},
			{Handle: 3, Path: "/work/internal/app/app.go", Modified: true},
			{Handle: 4, Path: "/work/README.md"},
			{Handle: 5, Path: "/work/internal/ui/main.go"},
		},
	}
}

func startHarness(t *testing.T, source Source) *Harness {
	t.Helper()
	testutil.CaptureLog(t)
	h := NewHarness(NewModel(source, bridge.New(), 60, 20, false))
	h.Start()
	return h
}

func TestInitShowsPickerBuffers(t *testing.T) {
	h := startHarness(t, sampleSource())
	state := h.Model().State()
	if !state.Visible {
		t.Fatalf("expected picker to be visible after load")
	}
	if len(state.Candidates) != 4 || state.Selected != 0 {
		t.Fatalf("expected 4 candidates with first selected, got %d/%d", len(state.Candidates), state.Selected)
	}
	if got := state.Candidates[0].DisplayName; got != "cmd/main.go" {
		t.Fatalf("expected duplicate to carry directory, got %q", got)
	}
	if got := state.Candidates[1].DisplayName; got != "app.go" {
		t.Fatalf("expected unique base name, got %q", got)
	}
}

func TestLoadFailureShowsEmptyPicker(t *testing.T) {
	source := sampleSource()
	source.listErr = errors.New("connection refused")
	h := startHarness(t, source)
	state := h.Model().State()
	if !state.Visible || len(state.Candidates) != 0 {
		t.Fatalf("expected empty visible picker, got %#v", state)
	}
	if !strings.Contains(h.View(), "Error: load buffers") {
		t.Fatalf("expected load error in status line, got:\n%s", h.View())
	}
}

func TestCwdFailureStillLoads(t *testing.T) {
	source := sampleSource()
	source.cwdErr = errors.New("no cwd")
	h := startHarness(t, source)
	if got := len(h.Model().State().Candidates); got != 4 {
		t.Fatalf("expected buffers without cwd, got %d", got)
	}
}

func TestTypingFiltersCandidates(t *testing.T) {
	h := startHarness(t, sampleSource())
	h.Type("readme")
	state := h.Model().State()
	if state.Query != "readme" {
		t.Fatalf("expected query readme, got %q", state.Query)
	}
	if len(state.Candidates) != 1 || state.Candidates[0].Handle != 4 {
		t.Fatalf("expected README.md only, got %#v", state.Candidates)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := h.Model().State().Query; got != "readm" {
		t.Fatalf("expected backspace to edit query, got %q", got)
	}
}

func TestNavigationKeysWrap(t *testing.T) {
	h := startHarness(t, sampleSource())
	h.Send(tea.KeyMsg{Type: tea.KeyUp})
	if got := h.Model().State().Selected; got != 3 {
		t.Fatalf("expected up to wrap to 3, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	if got := h.Model().State().Selected; got != 0 {
		t.Fatalf("expected tab to wrap to 0, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	if got := h.Model().State().Selected; got != 2 {
		t.Fatalf("expected 2 after two moves down, got %d", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlP})
	if got := h.Model().State().Selected; got != 1 {
		t.Fatalf("expected ctrl+p to move up, got %d", got)
	}
}

func TestEnterSwitchesAndQuits(t *testing.T) {
	source := sampleSource()
	h := startHarness(t, source)
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !h.Quit() {
		t.Fatalf("expected program to quit after select")
	}
	if got := source.Switched(); len(got) != 1 || got[0] != 3 {
		t.Fatalf("expected switch to buffer 3, got %v", got)
	}
	if h.Model().State().Visible {
		t.Fatalf("expected picker hidden after select")
	}
}

func TestEnterWithoutCandidatesQuitsWithoutSwitch(t *testing.T) {
	source := sampleSource()
	h := startHarness(t, source)
	h.Type("zzzz")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !h.Quit() {
		t.Fatalf("expected quit")
	}
	if got := source.Switched(); len(got) != 0 {
		t.Fatalf("expected no switch, got %v", got)
	}
}

func TestSwitchFailureIsLoggedAndQuits(t *testing.T) {
	source := sampleSource()
	source.switchErr = errors.New("E86: Buffer 2 does not exist")
	read := testutil.CaptureLog(t)
	h := NewHarness(NewModel(source, bridge.New(), 60, 20, false))
	h.Start()
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !h.Quit() {
		t.Fatalf("expected quit after failed switch")
	}
	if !strings.Contains(read(), "switch to cmd/main.go") {
		t.Fatalf("expected switch failure in log, got %q", read())
	}
}

func TestEscapeHidesAndQuits(t *testing.T) {
	source := sampleSource()
	h := startHarness(t, source)
	h.Type("app")
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if !h.Quit() {
		t.Fatalf("expected quit on esc")
	}
	state := h.Model().State()
	if state.Visible || state.Query != "" || state.Selected != 0 {
		t.Fatalf("expected hidden reset state, got %#v", state)
	}
	if got := source.Switched(); len(got) != 0 {
		t.Fatalf("expected no switch on esc, got %v", got)
	}
}

func TestEnterIgnoredWhileLoading(t *testing.T) {
	testutil.CaptureLog(t)
	m := NewModel(sampleSource(), bridge.New(), 60, 20, false)
	h := NewHarness(m)
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.Quit() {
		t.Fatalf("expected enter to be ignored before the listing arrives")
	}
}

func TestQueryTypedWhileLoadingIsApplied(t *testing.T) {
	testutil.CaptureLog(t)
	h := NewHarness(NewModel(sampleSource(), bridge.New(), 60, 20, false))
	h.Type("readme")
	h.Start()
	state := h.Model().State()
	if state.Query != "readme" || len(state.Candidates) != 1 {
		t.Fatalf("expected typeahead to filter, got %#v", state)
	}
}

func TestLoadTimeout(t *testing.T) {
	source := sampleSource()
	source.block = make(chan struct{})
	defer close(source.block)
	testutil.CaptureLog(t)
	br := bridge.New(bridge.WithTimeout(20 * time.Millisecond))
	h := NewHarness(NewModel(source, br, 60, 20, false))
	h.Start()
	br.Wait()
	if !strings.Contains(h.Model().errMsg, bridge.ErrBackendTimeout.Error()) {
		t.Fatalf("expected timeout in status line, got %q", h.Model().errMsg)
	}
}

func TestWindowSizeRespectedUnlessFixed(t *testing.T) {
	testutil.CaptureLog(t)
	m := NewModel(sampleSource(), bridge.New(), 0, 10, false)
	m.Update(tea.WindowSizeMsg{Width: 33, Height: 44})
	if m.width != 33 || m.height != 10 {
		t.Fatalf("expected width 33 and fixed height 10, got %d/%d", m.width, m.height)
	}
}
