package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/nvim-switcher/internal/bridge"
	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	"github.com/atomicstack/nvim-switcher/internal/nvim"
)

// DefaultInterval is the poll period used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Source reads the editor state observed by the watcher.
type Source interface {
	Snapshot(ctx context.Context) (nvim.Snapshot, error)
}

// Event conveys a snapshot or an error from a backend poll.
type Event struct {
	Snapshot nvim.Snapshot
	Err      error
}

// Watcher polls the editor at a fixed interval and publishes events.
type Watcher struct {
	source   Source
	bridge   *bridge.Bridge
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls source every interval.
// Each fetch goes through br so a stalled editor cannot wedge the poller.
func NewWatcher(source Source, br *bridge.Bridge, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if br == nil {
		br = bridge.New()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		bridge:   br,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startSnapshotPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startSnapshotPoller() {
	throttle := newThrottle(w.interval / 2)
	w.wg.Add(1)
	go w.poll(func(ctx context.Context) (nvim.Snapshot, error) {
		if err := throttle.wait(ctx); err != nil {
			return nvim.Snapshot{}, err
		}
		return bridge.CallContext(ctx, w.bridge, "watcher.snapshot", w.source.Snapshot)
	})
}

func (w *Watcher) poll(fetch func(context.Context) (nvim.Snapshot, error)) {
	defer w.wg.Done()

	emit := func() bool {
		snap, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		events.Watcher.Poll(err)
		evt := Event{Snapshot: snap, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
