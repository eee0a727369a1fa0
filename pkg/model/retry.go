package model

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// retryPolicy is shared by the hosted backends: per-attempt timeout, linear
// backoff, immediate return on context cancellation.
type retryPolicy struct {
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
}

func (p retryPolicy) withDefaults(defaultTimeout time.Duration) retryPolicy {
	if p.timeout <= 0 {
		p.timeout = defaultTimeout
	}
	if p.maxRetries < 0 {
		p.maxRetries = 0
	}
	if p.backoff <= 0 {
		p.backoff = 500 * time.Millisecond
	}
	return p
}

func (p retryPolicy) run(ctx context.Context, backend string, attempt func(ctx context.Context) (Response, error)) (Response, error) {
	var lastErr error
	for i := 0; i <= p.maxRetries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		resp, err := attempt(attemptCtx)
		cancel()
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Response{}, err
		}
		lastErr = err

		if i < p.maxRetries {
			select {
			case <-ctx.Done():
				return Response{}, ctx.Err()
			case <-time.After(p.backoff * time.Duration(i+1)):
			}
		}
	}
	return Response{}, fmt.Errorf("%s: request failed after retries: %w", backend, lastErr)
}
