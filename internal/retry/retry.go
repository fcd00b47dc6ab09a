// Package retry implements a small, explicit retry policy.
//
// A Policy is applied at specific call sites (session acquisition, the
// document-info fetch) instead of wrapping arbitrary functions, so it is
// always visible which operations get retried.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/scribdl/scribdl/internal/logger"
)

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Default is the policy applied to network fetches.
var Default = Policy{MaxAttempts: 3, Delay: time.Second}

// None performs a single attempt with no retry.
var None = Policy{MaxAttempts: 1}

// Do runs fn until it succeeds, the attempts are exhausted, or ctx is
// done. The last error is returned on exhaustion.
func (p Policy) Do(ctx context.Context, name string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < attempts {
			logger.Warn("attempt failed, retrying",
				"op", name,
				"attempt", attempt,
				"max_attempts", attempts,
				"error", lastErr)
			select {
			case <-time.After(p.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempt(s): %w", name, attempts, lastErr)
}
