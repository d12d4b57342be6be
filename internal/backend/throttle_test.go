package backend

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected at least 40ms between three calls, got %s", elapsed)
	}
}

func TestThrottleDisabled(t *testing.T) {
	var nilThrottle *throttle
	if err := nilThrottle.wait(context.Background()); err != nil {
		t.Fatalf("expected nil throttle to pass, got %v", err)
	}
	th := newThrottle(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		_ = th.wait(context.Background())
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("expected disabled throttle not to sleep, took %s", elapsed)
	}
}

func TestThrottleCancelled(t *testing.T) {
	th := newThrottle(time.Hour)
	if err := th.wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := th.wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected cancelled wait to return promptly, took %s", elapsed)
	}
}
