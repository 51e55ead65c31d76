package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWaitForNonPositiveDuration(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Even a cancelled context must not matter when there is nothing to wait.
	if err := WaitFor(ctx, 0); err != nil {
		t.Errorf("WaitFor(ctx, 0) = %v, want nil", err)
	}
	if err := WaitFor(ctx, -time.Second); err != nil {
		t.Errorf("WaitFor(ctx, -1s) = %v, want nil", err)
	}
}

func TestWaitForElapses(t *testing.T) {
	t.Parallel()

	if err := WaitFor(context.Background(), time.Millisecond); err != nil {
		t.Errorf("WaitFor = %v, want nil", err)
	}
}

func TestWaitForCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := WaitFor(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("WaitFor = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("WaitFor returned after %s, expected prompt cancellation", elapsed)
	}
}
