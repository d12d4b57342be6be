// Package bridge runs backend round trips on dedicated goroutines and lets
// callers block on the result with a deadline.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/nvim-switcher/internal/logging/events"
)

// DefaultTimeout bounds a call when no explicit timeout is configured.
const DefaultTimeout = 2 * time.Second

// ErrBackendTimeout is returned when an operation does not finish before the
// bridge deadline.
var ErrBackendTimeout = errors.New("backend timeout")

// Bridge tracks in-flight operations and applies a shared deadline.
type Bridge struct {
	timeout time.Duration

	inflight atomic.Int64
	wg       sync.WaitGroup
}

type Option func(*Bridge)

// WithTimeout overrides the deadline. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// New creates a bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Timeout returns the per-call deadline.
func (b *Bridge) Timeout() time.Duration {
	return b.timeout
}

// Pending reports how many operations have not completed yet, including
// ones whose callers already timed out.
func (b *Bridge) Pending() int64 {
	return b.inflight.Load()
}

// Wait blocks until every started operation has completed.
func (b *Bridge) Wait() {
	b.wg.Wait()
}

type result[T any] struct {
	value T
	err   error
}

// Call runs op and blocks until it returns or the bridge deadline passes.
func Call[T any](b *Bridge, name string, op func(context.Context) (T, error)) (T, error) {
	return CallContext(context.Background(), b, name, op)
}

// CallContext is Call with a parent context. op receives a context that is
// cancelled when the caller stops waiting.
func CallContext[T any](parent context.Context, b *Bridge, name string, op func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(parent, b.timeout)
	defer cancel()

	// Buffered so the worker can always deliver and exit, even after the
	// caller has given up.
	done := make(chan result[T], 1)
	start := time.Now()
	b.inflight.Add(1)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer b.inflight.Add(-1)
		r := run(ctx, name, op)
		if ctx.Err() != nil {
			events.Bridge.Late(name, time.Since(start), r.err)
		}
		done <- r
	}()

	select {
	case r := <-done:
		return finish(b, ctx, parent, name, start, r)
	case <-ctx.Done():
		select {
		case r := <-done:
			return finish(b, ctx, parent, name, start, r)
		default:
		}
		var zero T
		if err := parent.Err(); err != nil {
			return zero, fmt.Errorf("%s: %w", name, err)
		}
		return zero, b.timedOut(name)
	}
}

// finish reports a delivered result. An op that gave up because the bridge
// deadline passed is a timeout, not an op failure.
func finish[T any](b *Bridge, ctx, parent context.Context, name string, start time.Time, r result[T]) (T, error) {
	if r.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil &&
		errors.Is(r.err, context.DeadlineExceeded) {
		var zero T
		return zero, b.timedOut(name)
	}
	events.Bridge.Complete(name, time.Since(start), r.err)
	return r.value, r.err
}

func (b *Bridge) timedOut(name string) error {
	events.Bridge.Timeout(name, b.timeout)
	return fmt.Errorf("%s: %w after %s", name, ErrBackendTimeout, b.timeout)
}

func run[T any](ctx context.Context, name string, op func(context.Context) (T, error)) (r result[T]) {
	defer func() {
		if p := recover(); p != nil {
			r = result[T]{err: fmt.Errorf("%s: panic: %v", name, p)}
		}
	}()
	value, err := op(ctx)
	return result[T]{value: value, err: err}
}
