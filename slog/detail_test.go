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

func TestLoggingDetailService(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs the lookup", func(t *testing.T) {
		t.Parallel()

		ref := pokedex.Reference{Number: 25, Name: "Pikachu"}
		inner := &mock.DetailService{
			GetDetailsFn: func(_ context.Context, got pokedex.Reference) (*pokedex.Details, error) {
				assert.Equal(t, ref, got)
				return &pokedex.Details{Reference: got}, nil
			},
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		s := pokedexslog.NewLoggingDetailService(inner, logger)

		details, err := s.GetDetails(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, ref, details.Reference)
		assert.Contains(t, buf.String(), "get details")
		assert.Contains(t, buf.String(), "name=Pikachu")
	})

	t.Run("logs the error on failure", func(t *testing.T) {
		t.Parallel()

		inner := &mock.DetailService{
			GetDetailsFn: func(_ context.Context, _ pokedex.Reference) (*pokedex.Details, error) {
				return nil, pokedex.Errorf(pokedex.EEXTRACT, "info panel title anchor not found")
			},
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		s := pokedexslog.NewLoggingDetailService(inner, logger)

		_, err := s.GetDetails(context.Background(), pokedex.Reference{Number: 25, Name: "Pikachu"})
		require.Error(t, err)
		assert.Contains(t, buf.String(), "anchor not found")
	})
}
