package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes a bounded constant-interval retry loop.
type Policy struct {
	Attempts uint          // total attempts including the first
	Interval time.Duration // pause between attempts
	// Retryable reports whether an error is worth retrying. A nil
	// Retryable retries everything.
	Retryable func(error) bool
}

// Do runs op under the policy. Non-retryable errors abort immediately
// and are returned as-is. The context cancels the loop between attempts.
func Do(ctx context.Context, p Policy, op func() error) error {
	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Interval), uint64(attempts-1)),
		ctx,
	)
	return backoff.Retry(wrapped, bo)
}
