package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces successive polls by at least interval. A zero interval
// disables it.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: max(interval, 0)}
}

// wait blocks until the next slot is free or ctx is done, then claims the slot.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.interval == 0 {
		return ctx.Err()
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if delay := time.Until(t.last.Add(t.interval)); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	t.last = time.Now()
	return nil
}
