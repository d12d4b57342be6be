package backend

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
)

type scriptedSource struct {
	mu    sync.Mutex
	steps []nvim.Snapshot
	errs  []error
	calls int
}

func (s *scriptedSource) Snapshot(ctx context.Context) (nvim.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nvim.Snapshot{}, s.errs[i]
	}
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	return s.steps[i], nil
}

func TestWatcherEmitsSnapshotsInOrder(t *testing.T) {
	src := &scriptedSource{steps: []nvim.Snapshot{
		{Window: 1000, Buffer: 1},
		{Window: 1001, Buffer: 2},
	}}
	w := NewWatcher(src, bridge.New(), 5*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	first := receive(t, w)
	second := receive(t, w)
	if first.Err != nil || first.Snapshot.Window != 1000 {
		t.Fatalf("unexpected first event %#v", first)
	}
	if second.Err != nil || second.Snapshot.Window != 1001 {
		t.Fatalf("unexpected second event %#v", second)
	}
}

func TestWatcherForwardsErrors(t *testing.T) {
	boom := errors.New("boom")
	src := &scriptedSource{
		steps: []nvim.Snapshot{{Window: 1000}},
		errs:  []error{boom},
	}
	w := NewWatcher(src, nil, 5*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if evt := receive(t, w); !errors.Is(evt.Err, boom) {
		t.Fatalf("expected boom, got %v", evt.Err)
	}
	if evt := receive(t, w); evt.Err != nil {
		t.Fatalf("expected recovery after error, got %v", evt.Err)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	src := &scriptedSource{steps: []nvim.Snapshot{{}}}
	w := NewWatcher(src, nil, time.Hour)
	receive(t, w)
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed events channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel was not closed")
	}
}

func receive(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed early")
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}
}
