package mock

import "github.com/fwojciec/pokedex"

var _ pokedex.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor is a mock implementation of pokedex.ListingExtractor.
type ListingExtractor struct {
	ExtractReferencesFn func(html string) ([]pokedex.Reference, error)
}

func (e *ListingExtractor) ExtractReferences(html string) ([]pokedex.Reference, error) {
	return e.ExtractReferencesFn(html)
}

var _ pokedex.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor is a mock implementation of pokedex.DetailExtractor.
type DetailExtractor struct {
	ExtractDetailsFn func(html string, ref pokedex.Reference) (*pokedex.Details, error)
}

func (e *DetailExtractor) ExtractDetails(html string, ref pokedex.Reference) (*pokedex.Details, error) {
	return e.ExtractDetailsFn(html, ref)
}
