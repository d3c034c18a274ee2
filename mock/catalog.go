package mock

import (
	"context"

	"github.com/fwojciec/pokedex"
)

var _ pokedex.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of pokedex.CatalogService.
type CatalogService struct {
	ListReferencesFn func(ctx context.Context) ([]pokedex.Reference, error)
	ClearFn          func() bool
}

func (s *CatalogService) ListReferences(ctx context.Context) ([]pokedex.Reference, error) {
	return s.ListReferencesFn(ctx)
}

func (s *CatalogService) Clear() bool {
	return s.ClearFn()
}
