// Package retry implements a bounded fixed-delay retry policy.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy holds the retry parameters: how many attempts to make and how
// long to wait between them. The delay is fixed, not exponential.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do runs fn up to MaxAttempts times, sleeping Delay between attempts.
// The error from the final attempt is returned when all attempts fail.
// The sleep is context-aware so callers can abort early.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		return fmt.Errorf("retry: MaxAttempts must be positive, got %d", p.MaxAttempts)
	}

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay):
		}
	}

	return err
}
