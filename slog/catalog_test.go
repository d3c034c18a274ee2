package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/pokedex"
	"github.com/fwojciec/pokedex/mock"
	pokedexslog "github.com/fwojciec/pokedex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCatalogService(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs the listing", func(t *testing.T) {
		t.Parallel()

		refs := []pokedex.Reference{{Number: 25, Name: "Pikachu"}}
		inner := &mock.CatalogService{
			ListReferencesFn: func(_ context.Context) ([]pokedex.Reference, error) {
				return refs, nil
			},
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		s := pokedexslog.NewLoggingCatalogService(inner, logger)

		got, err := s.ListReferences(context.Background())
		require.NoError(t, err)
		assert.Equal(t, refs, got)
		assert.Contains(t, buf.String(), "list references")
		assert.Contains(t, buf.String(), "count=1")
	})

	t.Run("delegates and logs clear", func(t *testing.T) {
		t.Parallel()

		inner := &mock.CatalogService{
			ClearFn: func() bool { return true },
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		s := pokedexslog.NewLoggingCatalogService(inner, logger)

		assert.True(t, s.Clear())
		assert.Contains(t, buf.String(), "clear catalog cache")
		assert.Contains(t, buf.String(), "cleared=true")
	})
}
