// README: Explicit, testable retry policy for outbound provider calls.
package provider

import (
	"context"
	"time"
)

// RetryPolicy bounds retries of transient provider failures. The zero value
// performs a single attempt.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetry is used when a caller does not configure its own policy.
var DefaultRetry = RetryPolicy{MaxAttempts: 3, BaseDelay: 300 * time.Millisecond, MaxDelay: 5 * time.Second}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// delay computes the backoff before attempt n (0-based). Rate-limited
// failures back off twice as long as plain unavailability.
func (p RetryPolicy) delay(n int, kind Kind) time.Duration {
	d := p.BaseDelay << uint(n)
	if kind == KindRateLimited {
		d *= 2
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Do runs fn up to the policy's attempt bound, backing off between transient
// failures. Semantic failures (invalid request, malformed response) are
// returned immediately. Context cancellation aborts the loop.
func Do(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	var last error
	for attempt := 0; attempt < policy.attempts(); attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(policy.delay(attempt-1, KindOf(last)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return E(KindUnavailable, "retry", ctx.Err())
			case <-timer.C:
			}
		}

		last = fn(ctx)
		if last == nil {
			return nil
		}
		if !Retryable(last) {
			return last
		}
	}
	return last
}
