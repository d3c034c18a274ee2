// Package crawl provides catalog warm-up orchestration: it walks the
// reference listing and resolves every detail record with bounded
// concurrency, typically through the SQLite detail cache.
package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/pokedex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the concurrent detail-fetch limit used when the
// Warmer's Concurrency field is zero.
const DefaultConcurrency = 4

// ProgressEvent reports progress during a warm operation.
type ProgressEvent struct {
	Reference pokedex.Reference
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is a callback for reporting warm progress.
// It is invoked from worker goroutines but never concurrently.
type ProgressFunc func(event ProgressEvent)

// Result holds the outcome of a warm operation.
type Result struct {
	Warmed int
	Failed int
}

// Warmer resolves every catalog entry's detail record.
type Warmer struct {
	Catalog     pokedex.CatalogService
	Details     pokedex.DetailService
	Concurrency int
}

// Warm lists the catalog and resolves all detail records. Per-entry
// failures are reported through progress and counted, not fatal: like the
// listing path, warming degrades to a best-effort partial result. Only
// context cancellation aborts the run.
func (w *Warmer) Warm(ctx context.Context, progress ProgressFunc) (*Result, error) {
	refs, err := w.Catalog.ListReferences(ctx)
	if err != nil {
		return nil, err
	}

	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu        sync.Mutex
		completed int
		result    Result
	)
	report := func(ref pokedex.Reference, entryErr error) {
		mu.Lock()
		defer mu.Unlock()
		completed++
		if entryErr != nil {
			result.Failed++
		} else {
			result.Warmed++
		}
		if progress != nil {
			progress(ProgressEvent{
				Reference: ref,
				Completed: completed,
				Total:     len(refs),
				Error:     entryErr,
			})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, entryErr := w.Details.GetDetails(ctx, ref)
			report(ref, entryErr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &result, nil
}
