package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend connectivity failures. Backends wrap it so
// callers can tell "the cache is unreachable" apart from "the entry is bad".
var ErrNetwork = errors.New("network error")

// RetryableError marks an error as transient: RetryWithBackoff retries it,
// anything else fails fast.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is marked transient anywhere in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry policy for backends with transient failures (redis): a fixed number
// of attempts with doubling delay.
const (
	retryAttempts     = 3
	retryInitialDelay = time.Second
)

// RetryWithBackoff runs fn until it succeeds, fails with a non-retryable
// error, exhausts the attempt budget, or the context is canceled.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryInitialDelay
	var lastErr error

	for attempt := 0; attempt < retryAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == retryAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
