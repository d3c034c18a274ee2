package pokedex

import (
	"context"
	"net/url"
	"strings"
)

// UnknownValue is the sentinel stored in numeric Details fields when the
// source page omits the value or it cannot be parsed.
const UnknownValue = 0

// DefaultBaseURL is the wiki host the extractors were written against.
const DefaultBaseURL = "https://bulbapedia.bulbagarden.net"

// ListPagePath is the path of the National Pokédex index page, relative to
// the base URL.
const ListPagePath = "/wiki/List_of_Pok%C3%A9mon_by_National_Pok%C3%A9dex_number"

// Reference identifies one catalog entry. Identity is the National Pokédex
// number alone: two references with the same number are the same entry even
// if their names differ. References are constructed by the listing
// extractor and immutable afterwards.
type Reference struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Validate returns an error if the reference contains invalid fields.
func (r Reference) Validate() error {
	if r.Number <= 0 {
		return Errorf(EINVALID, "reference number must be positive")
	}
	if r.Name == "" {
		return Errorf(EINVALID, "reference name required")
	}
	return nil
}

// Details is the full attribute record for one catalog entry. It holds a
// Reference by composition rather than extending it.
type Details struct {
	Reference

	// Description is the free-text blurb from the top of the species page,
	// possibly multiple paragraphs joined with newlines.
	Description string `json:"description"`

	// Types holds the species' type names in document order, conventionally
	// one or two entries. Empty when unextractable.
	Types []string `json:"types"`

	// Numeric attributes from the info panel. UnknownValue when the field
	// is absent or unparseable.
	CatchRate      int `json:"catchRate"`
	BaseExpYield   int `json:"baseExpYield"`
	BaseFriendship int `json:"baseFriendship"`

	// Hatch time as an egg-cycle range. When the page carries a single
	// value both ends are equal; UnknownValue on both ends when absent.
	HatchTimeMin int `json:"hatchTimeMin"`
	HatchTimeMax int `json:"hatchTimeMax"`
}

// DetailPagePath returns the wiki path of the species page for the given
// entry name, relative to the base URL.
func DetailPagePath(name string) string {
	title := strings.ReplaceAll(name+" (Pokémon)", " ", "_")
	return "/wiki/" + url.PathEscape(title)
}

// Fetcher retrieves HTML documents from the wiki.
// Implementations hide transport details such as retries and rate limiting.
type Fetcher interface {
	// Fetch retrieves the document at the URL and returns its HTML.
	// The context controls timeout and cancellation. Fetch failures carry
	// the EUNAVAILABLE code (ENOTFOUND for missing pages).
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// CatalogService provides the ordered, deduplicated reference listing.
type CatalogService interface {
	// ListReferences returns every catalog entry, ascending by number.
	ListReferences(ctx context.Context) ([]Reference, error)

	// Clear discards any cached listing and reports whether one was
	// present. The next ListReferences call re-extracts.
	Clear() bool
}

// DetailService resolves one entry's full detail record.
type DetailService interface {
	// GetDetails fetches and extracts the detail record for ref.
	// Returns EEXTRACT if the species page deviates from the assumed
	// layout, or a fetch error unchanged.
	GetDetails(ctx context.Context, ref Reference) (*Details, error)
}

// ListingExtractor turns the index page's HTML into references.
type ListingExtractor interface {
	ExtractReferences(html string) ([]Reference, error)
}

// DetailExtractor turns a species page's HTML into a detail record.
type DetailExtractor interface {
	ExtractDetails(html string, ref Reference) (*Details, error)
}
