// Package retry runs provider calls with a fixed pre-call delay and a fixed
// backoff between failed attempts.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
)

// Defaults used when no configuration overrides them.
const (
	DefaultMaxAttempts  = 3
	DefaultPreCallDelay = 500 * time.Millisecond
	DefaultBackoff      = time.Second
)

// Policy defines how a single operation is attempted.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first
	MaxAttempts int

	// PreCallDelay is waited before every attempt, to stay polite with the provider
	PreCallDelay time.Duration

	// Backoff is waited after a failed attempt that will be retried
	Backoff time.Duration
}

// NewPolicy returns the default policy.
func NewPolicy() Policy {
	return Policy{
		MaxAttempts:  DefaultMaxAttempts,
		PreCallDelay: DefaultPreCallDelay,
		Backoff:      DefaultBackoff,
	}
}

// Do runs fn until it succeeds or the attempts are exhausted. The final error
// wraps the last failure with the operation name and the attempt count.
// Cancellation of ctx stops waiting and is returned as is.
func (p Policy) Do(ctx context.Context, logger arbor.ILogger, operation string, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := wait(ctx, p.PreCallDelay); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 1 {
				logger.Debug().
					Str("operation", operation).
					Int("attempt", attempt).
					Msg("Operation succeeded after retry")
			}
			return nil
		}

		if ctx.Err() != nil {
			return lastErr
		}

		if attempt < attempts {
			logger.Debug().
				Str("operation", operation).
				Int("attempt", attempt).
				Err(lastErr).
				Dur("backoff", p.Backoff).
				Msg("Retrying after backoff")

			if err := wait(ctx, p.Backoff); err != nil {
				return err
			}
		}
	}

	logger.Warn().
		Str("operation", operation).
		Int("max_attempts", attempts).
		Err(lastErr).
		Msg("All retry attempts exhausted")

	return fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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
