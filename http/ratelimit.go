package http

import (
	"context"

	"github.com/fwojciec/pokedex"
	"golang.org/x/time/rate"
)

var _ pokedex.Fetcher = (*RateLimitedFetcher)(nil)

// RateLimitedFetcher wraps a Fetcher with a token-bucket rate limit.
// All requests go to one wiki host, so a single limiter suffices; the
// burst of 1 disallows bursting entirely.
type RateLimitedFetcher struct {
	next    pokedex.Fetcher
	limiter *rate.Limiter
}

// NewRateLimitedFetcher creates a RateLimitedFetcher with the specified
// requests-per-second limit.
func NewRateLimitedFetcher(next pokedex.Fetcher, rps float64) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Fetch blocks until the rate limit allows a request, then delegates.
// Returns an error if the context is canceled before the wait completes.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return f.next.Fetch(ctx, url)
}

// Close closes the wrapped fetcher.
func (f *RateLimitedFetcher) Close() error {
	return f.next.Close()
}
