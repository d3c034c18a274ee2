package http

import (
	"context"
	"time"

	"github.com/fwojciec/pokedex"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

var _ pokedex.Fetcher = (*RetryingFetcher)(nil)

// RetryingFetcher wraps a Fetcher with exponential backoff retries.
// Only EUNAVAILABLE failures are retried; an ENOTFOUND page will not
// appear on a later attempt.
type RetryingFetcher struct {
	next   pokedex.Fetcher
	delays []time.Duration
}

// NewRetryingFetcher creates a RetryingFetcher with the default delays
// (3 retries, 4 total attempts).
func NewRetryingFetcher(next pokedex.Fetcher) *RetryingFetcher {
	return NewRetryingFetcherDelays(next, DefaultRetryDelays())
}

// NewRetryingFetcherDelays is like NewRetryingFetcher but allows
// configurable delays. Useful for testing without waiting for real delays.
func NewRetryingFetcherDelays(next pokedex.Fetcher, delays []time.Duration) *RetryingFetcher {
	return &RetryingFetcher{next: next, delays: delays}
}

// Fetch delegates to the wrapped fetcher, retrying transient failures.
func (f *RetryingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if pokedex.ErrorCode(err) != pokedex.EUNAVAILABLE {
			return "", err
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close closes the wrapped fetcher.
func (f *RetryingFetcher) Close() error {
	return f.next.Close()
}
