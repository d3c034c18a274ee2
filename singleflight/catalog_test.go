package singleflight_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pokedex"
	"github.com/fwojciec/pokedex/goquery"
	"github.com/fwojciec/pokedex/mock"
	"github.com/fwojciec/pokedex/singleflight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kantoRefs = []pokedex.Reference{
	{Number: 1, Name: "Bulbasaur"},
	{Number: 25, Name: "Pikachu"},
}

// countingFetcher returns a fetcher that counts invocations and a pointer
// to the counter. The returned HTML is irrelevant; extraction is mocked.
func countingFetcher(calls *atomic.Int64) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			calls.Add(1)
			return "<html></html>", nil
		},
	}
}

func staticExtractor(refs []pokedex.Reference) *mock.ListingExtractor {
	return &mock.ListingExtractor{
		ExtractReferencesFn: func(_ string) ([]pokedex.Reference, error) {
			return refs, nil
		},
	}
}

func TestCatalog_ListReferences(t *testing.T) {
	t.Parallel()

	t.Run("extracts on first access and caches", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		c := singleflight.NewCatalog(countingFetcher(&calls), staticExtractor(kantoRefs), "https://example.com")

		first, err := c.ListReferences(context.Background())
		require.NoError(t, err)
		second, err := c.ListReferences(context.Background())
		require.NoError(t, err)

		assert.Equal(t, kantoRefs, first)
		assert.Equal(t, kantoRefs, second)
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("concurrent callers trigger exactly one extraction", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		release := make(chan struct{})
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				calls.Add(1)
				<-release
				return "<html></html>", nil
			},
		}
		c := singleflight.NewCatalog(fetcher, staticExtractor(kantoRefs), "https://example.com")

		const n = 16
		results := make([][]pokedex.Reference, n)
		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = c.ListReferences(context.Background())
			}(i)
		}

		// Let the goroutines pile up on the in-flight extraction.
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int64(1), calls.Load())
		for i := 0; i < n; i++ {
			require.NoError(t, errs[i])
			assert.Equal(t, kantoRefs, results[i])
		}
	})

	t.Run("a failed extraction is not cached", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				if calls.Add(1) == 1 {
					return "", pokedex.Errorf(pokedex.EUNAVAILABLE, "connection refused")
				}
				return "<html></html>", nil
			},
		}
		c := singleflight.NewCatalog(fetcher, staticExtractor(kantoRefs), "https://example.com")

		_, err := c.ListReferences(context.Background())
		require.Error(t, err)
		assert.Equal(t, pokedex.EUNAVAILABLE, pokedex.ErrorCode(err))

		refs, err := c.ListReferences(context.Background())
		require.NoError(t, err)
		assert.Equal(t, kantoRefs, refs)
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("an abandoned waiter does not disturb the extraction", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		release := make(chan struct{})
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) {
				calls.Add(1)
				select {
				case <-release:
					return "<html></html>", nil
				case <-ctx.Done():
					return "", ctx.Err()
				}
			},
		}
		c := singleflight.NewCatalog(fetcher, staticExtractor(kantoRefs), "https://example.com")

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			_, err := c.ListReferences(ctx)
			done <- err
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()
		require.ErrorIs(t, <-done, context.Canceled)

		// The in-flight extraction completes despite the canceled waiter
		// and populates the cache for later callers.
		close(release)
		assert.Eventually(t, func() bool {
			refs, err := c.ListReferences(context.Background())
			return err == nil && len(refs) == len(kantoRefs) && calls.Load() == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("integrates with the real listing extractor", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html><html><body>
<table><tr><td>nav</td></tr></table>
<table><tr><td>#001</td><td>#001</td><td>img</td><td>Bulbasaur</td></tr></table>
</body></html>`
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				assert.Equal(t, "https://example.com"+pokedex.ListPagePath, url)
				return html, nil
			},
		}
		c := singleflight.NewCatalog(fetcher, goquery.NewListingExtractor(), "https://example.com")

		refs, err := c.ListReferences(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []pokedex.Reference{{Number: 1, Name: "Bulbasaur"}}, refs)
	})
}

func TestCatalog_Clear(t *testing.T) {
	t.Parallel()

	t.Run("reports false on an empty store", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		c := singleflight.NewCatalog(countingFetcher(&calls), staticExtractor(kantoRefs), "https://example.com")

		assert.False(t, c.Clear())
	})

	t.Run("clearing forces a fresh extraction", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		c := singleflight.NewCatalog(countingFetcher(&calls), staticExtractor(kantoRefs), "https://example.com")

		_, err := c.ListReferences(context.Background())
		require.NoError(t, err)
		assert.True(t, c.Clear())
		assert.False(t, c.Clear())

		_, err = c.ListReferences(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), calls.Load())
	})
}
