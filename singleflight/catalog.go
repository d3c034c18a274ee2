// Package singleflight provides the memoized catalog store. It guarantees
// that concurrent listing requests against an empty cache trigger exactly
// one extraction, shared by all requesters.
package singleflight

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/pokedex"
	"golang.org/x/sync/singleflight"
)

var _ pokedex.CatalogService = (*Catalog)(nil)

// listKey is the single-flight key for the one cached listing.
const listKey = "list"

// Catalog wraps fetch plus listing extraction behind a single-flight,
// clearable cache. The populated fast path is lock-free; the miss path
// coalesces concurrent callers onto one extraction.
type Catalog struct {
	fetcher   pokedex.Fetcher
	extractor pokedex.ListingExtractor
	url       string

	mu     sync.Mutex
	group  singleflight.Group
	cached atomic.Pointer[[]pokedex.Reference]
}

// NewCatalog creates a Catalog extracting from the index page at
// baseURL + pokedex.ListPagePath.
func NewCatalog(fetcher pokedex.Fetcher, extractor pokedex.ListingExtractor, baseURL string) *Catalog {
	return &Catalog{
		fetcher:   fetcher,
		extractor: extractor,
		url:       baseURL + pokedex.ListPagePath,
	}
}

// ListReferences returns the cached listing, extracting it on first
// access. Concurrent callers during extraction block and observe the same
// result. A caller abandoning the wait (context cancellation) does not
// affect other waiters: the extraction runs to completion and populates
// the cache regardless.
func (c *Catalog) ListReferences(ctx context.Context) ([]pokedex.Reference, error) {
	if refs := c.cached.Load(); refs != nil {
		return *refs, nil
	}

	ch := c.group.DoChan(listKey, func() (any, error) {
		// Re-check under the single flight: a racing caller may have
		// populated the cache between the fast-path check and here.
		if refs := c.cached.Load(); refs != nil {
			return *refs, nil
		}

		// The extraction outlives any individual waiter.
		refs, err := c.extract(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.cached.Store(&refs)
		return refs, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]pokedex.Reference), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Clear discards the cached listing and reports whether one was present.
// Fast no-op when already empty.
func (c *Catalog) Clear() bool {
	if c.cached.Load() == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached.Swap(nil) != nil
}

func (c *Catalog) extract(ctx context.Context) ([]pokedex.Reference, error) {
	html, err := c.fetcher.Fetch(ctx, c.url)
	if err != nil {
		return nil, err
	}
	return c.extractor.ExtractReferences(html)
}
