package agent

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy decides how a job waits between failed attempts.
// MaxAttempts of zero retries until the operation succeeds or ctx is done.
type RetryPolicy struct {
	Interval    time.Duration
	Multiplier  float64
	MaxInterval time.Duration
	MaxAttempts uint
}

// DefaultRetryPolicy retries every three seconds without a cap.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Interval:   3 * time.Second,
		Multiplier: 1,
	}
}

func (p RetryPolicy) backOff() backoff.BackOff {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultRetryPolicy().Interval
	}

	if p.Multiplier <= 1 {
		return backoff.NewConstantBackOff(interval)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = interval
	b.Multiplier = p.Multiplier
	b.RandomizationFactor = 0
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	return b
}

// Retry runs op until it succeeds, the policy gives up, or ctx is done.
// attempt starts at 1. notify, when set, sees every failure that will be retried.
func Retry[T any](ctx context.Context, p RetryPolicy, op func(attempt uint) (T, error), notify func(err error, next time.Duration)) (T, error) {
	var attempt uint

	opts := []backoff.RetryOption{
		backoff.WithBackOff(p.backOff()),
		backoff.WithMaxElapsedTime(0),
	}
	if p.MaxAttempts > 0 {
		opts = append(opts, backoff.WithMaxTries(p.MaxAttempts))
	}
	if notify != nil {
		opts = append(opts, backoff.WithNotify(notify))
	}

	return backoff.Retry(ctx, func() (T, error) {
		attempt++
		retryAttempts.Inc()
		return op(attempt)
	}, opts...)
}
