package mock

import (
	"context"

	"github.com/fwojciec/pokedex"
)

var _ pokedex.DetailService = (*DetailService)(nil)

// DetailService is a mock implementation of pokedex.DetailService.
type DetailService struct {
	GetDetailsFn func(ctx context.Context, ref pokedex.Reference) (*pokedex.Details, error)
}

func (s *DetailService) GetDetails(ctx context.Context, ref pokedex.Reference) (*pokedex.Details, error) {
	return s.GetDetailsFn(ctx, ref)
}
