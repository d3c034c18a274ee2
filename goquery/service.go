package goquery

import (
	"context"

	"github.com/fwojciec/pokedex"
)

var _ pokedex.DetailService = (*DetailService)(nil)

// DetailService resolves detail records by fetching the species page and
// running the detail extractor on it. Lookups are stateless and uncached;
// wrap with sqlite.DetailCache for the caching configuration.
type DetailService struct {
	fetcher   pokedex.Fetcher
	extractor pokedex.DetailExtractor
	baseURL   string
}

// NewDetailService creates a DetailService fetching from baseURL.
func NewDetailService(fetcher pokedex.Fetcher, baseURL string) *DetailService {
	return &DetailService{
		fetcher:   fetcher,
		extractor: NewDetailExtractor(),
		baseURL:   baseURL,
	}
}

// GetDetails fetches and extracts the detail record for ref.
// Fetch errors propagate unchanged; layout deviations surface as EEXTRACT.
func (s *DetailService) GetDetails(ctx context.Context, ref pokedex.Reference) (*pokedex.Details, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	html, err := s.fetcher.Fetch(ctx, s.baseURL+pokedex.DetailPagePath(ref.Name))
	if err != nil {
		return nil, err
	}

	return s.extractor.ExtractDetails(html, ref)
}
