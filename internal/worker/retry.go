package worker

import (
	"context"
	"errors"
	"time"

	"investigacion/internal/infra"
)

// withRetry calls fn up to maxAttempts times, waiting base, 2*base, 4*base...
// between attempts. An open circuit stops retrying at once.
func withRetry(ctx context.Context, maxAttempts int, base time.Duration, fn func(attempt int) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if errors.Is(err, infra.ErrCircuitOpen) || attempt == maxAttempts {
			break
		}
		wait := base * time.Duration(1<<(attempt-1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
