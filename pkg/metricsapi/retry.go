package metricsapi

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultRetryInitialInterval = 200 * time.Millisecond
	defaultRetryMaxInterval     = 5 * time.Second
)

// RetryPolicy is a bounded exponential backoff applied around each fetch.
// Transport errors, 5xx and 429 responses are retried; everything else fails
// on the first attempt.
type RetryPolicy struct {
	// MaxRetries is the number of attempts after the first. Zero disables retries.
	MaxRetries int
	// InitialInterval before the first retry. Defaults to 200ms.
	InitialInterval time.Duration
	// MaxInterval caps the wait between retries. Defaults to 5s.
	MaxInterval time.Duration
}

// Attempts returns the maximum number of attempts per fetch
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return p.MaxRetries + 1
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	if eb.InitialInterval <= 0 {
		eb.InitialInterval = defaultRetryInitialInterval
	}
	eb.MaxInterval = p.MaxInterval
	if eb.MaxInterval <= 0 {
		eb.MaxInterval = defaultRetryMaxInterval
	}
	eb.MaxElapsedTime = 0

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)
}

func (p RetryPolicy) run(ctx context.Context, op backoff.Operation) error {
	return backoff.Retry(op, p.backOff(ctx))
}
