// Package goquery implements the wiki markup extractors using CSS
// selectors. The extraction rules are tailored to one page layout family;
// each structural assumption lives in a named predicate so that layout
// drift surfaces as a localized, diagnosable failure.
package goquery

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pokedex"
)

var _ pokedex.ListingExtractor = (*ListingExtractor)(nil)

// ListingExtractor turns the National Pokédex index page into a
// deduplicated, ascending-ordered sequence of references.
type ListingExtractor struct{}

// NewListingExtractor creates a new ListingExtractor.
func NewListingExtractor() *ListingExtractor {
	return &ListingExtractor{}
}

// numberCellRe matches the numeric-id marker of a data row: optional
// whitespace, '#', one or more digits, optional whitespace.
var numberCellRe = regexp.MustCompile(`^\s*#\d+\s*$`)

// ExtractReferences parses the index page HTML and returns its references.
// Rows that fail structural assumptions are skipped rather than aborting
// the listing; the result is best-effort partial on malformed input.
func (e *ListingExtractor) ExtractReferences(html string) ([]pokedex.Reference, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pokedex.Errorf(pokedex.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[int]bool)
	var refs []pokedex.Reference

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		// The first table on the index page is navigational chrome,
		// not data.
		if i == 0 {
			return
		}
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			ref, ok := referenceFromRow(row)
			if !ok || seen[ref.Number] {
				return
			}
			seen[ref.Number] = true
			refs = append(refs, ref)
		})
	})

	sort.Slice(refs, func(i, j int) bool { return refs[i].Number < refs[j].Number })

	return refs, nil
}

// referenceFromRow applies the data-row heuristics: at least four columns,
// a numeric-id marker in the second, a non-empty name in the fourth.
// Returns false for non-data rows (section headers, decorative rows).
func referenceFromRow(row *goquery.Selection) (pokedex.Reference, bool) {
	cells := row.ChildrenFiltered("td, th")
	if cells.Length() < 4 {
		return pokedex.Reference{}, false
	}

	idText := cells.Eq(1).Text()
	if !numberCellRe.MatchString(idText) {
		return pokedex.Reference{}, false
	}

	number := pokedex.ParseIntOrDefault(strings.TrimPrefix(strings.TrimSpace(idText), "#"), 0)
	if number <= 0 {
		return pokedex.Reference{}, false
	}

	name := strings.TrimSpace(cells.Eq(3).Text())
	if name == "" {
		return pokedex.Reference{}, false
	}

	return pokedex.Reference{Number: number, Name: name}, true
}
