package utils

import (
	"context"
	"time"
)

// WaitFor blocks for d or until the context is cancelled, whichever comes
// first. A non-positive duration returns immediately. Used for retry
// backoffs that must not outlive the request.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
