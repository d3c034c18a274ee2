package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pokedex"
	"golang.org/x/net/html"
)

// Info panel field labels as they appear on the species page.
const (
	fieldCatchRate      = "Catch rate"
	fieldBaseExpYield   = "Base experience yield"
	fieldHatchTime      = "Hatch time"
	fieldBaseFriendship = "Base friendship"
)

// unknownToken marks placeholder values on the species page.
const unknownToken = "unknown"

var _ pokedex.DetailExtractor = (*DetailExtractor)(nil)

// DetailExtractor turns one species page into a fully populated detail
// record.
type DetailExtractor struct{}

// NewDetailExtractor creates a new DetailExtractor.
func NewDetailExtractor() *DetailExtractor {
	return &DetailExtractor{}
}

// ExtractDetails parses the species page HTML and assembles the detail
// record for ref. Missing or unparseable numeric fields default to
// pokedex.UnknownValue; a missing or ambiguous structural anchor returns
// an EEXTRACT error naming the anchor.
func (e *DetailExtractor) ExtractDetails(htmlSrc string, ref pokedex.Reference) (*pokedex.Details, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, pokedex.Errorf(pokedex.EINVALID, "failed to parse HTML: %v", err)
	}

	panel, err := infoPanel(doc)
	if err != nil {
		return nil, err
	}

	description, err := extractDescription(doc)
	if err != nil {
		return nil, err
	}

	d := &pokedex.Details{
		Reference:   ref,
		Description: description,
		Types:       extractTypes(panel),
	}
	d.CatchRate = pokedex.ParseIntOrDefault(panelValue(panel, fieldCatchRate), pokedex.UnknownValue)
	d.BaseExpYield = pokedex.ParseIntOrDefault(panelValue(panel, fieldBaseExpYield), pokedex.UnknownValue)
	d.BaseFriendship = pokedex.ParseIntOrDefault(panelValue(panel, fieldBaseFriendship), pokedex.UnknownValue)
	d.HatchTimeMin, d.HatchTimeMax = pokedex.ParseRangeOrDefault(panelValue(panel, fieldHatchTime), pokedex.UnknownValue)

	return d, nil
}

// infoPanel locates the species info panel among the page's side-panel
// tables. Exactly one candidate must carry the bold-title anchor;
// zero or several is a structural extraction failure.
func infoPanel(doc *goquery.Document) (*goquery.Selection, error) {
	var matches []*goquery.Selection
	doc.Find("table.roundy").Each(func(_ int, tbl *goquery.Selection) {
		if hasBoldTitleAnchor(tbl) {
			matches = append(matches, tbl)
		}
	})

	switch len(matches) {
	case 0:
		return nil, pokedex.Errorf(pokedex.EEXTRACT, "info panel title anchor not found")
	case 1:
		return matches[0], nil
	default:
		return nil, pokedex.Errorf(pokedex.EEXTRACT, "info panel title anchor ambiguous: %d candidates", len(matches))
	}
}

// hasBoldTitleAnchor reports whether tbl carries the distinctive marker of
// the info panel: a bold title cell nested two tables deep. Decorative
// side tables lack this shape.
func hasBoldTitleAnchor(tbl *goquery.Selection) bool {
	return tbl.Find("table table b").Length() > 0
}

// panelValue looks up a named field in the info panel. Candidate cells
// contain a bold label followed by a nested value table; the label is
// matched case-insensitively. The value is the first nested table cell's
// raw text node, trimmed. Values starting with the "unknown" placeholder
// are skipped in favor of the next candidate. Returns "" when no
// qualifying value exists.
func panelValue(panel *goquery.Selection, field string) string {
	var value string
	panel.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		label := cell.ChildrenFiltered("b").First()
		if label.Length() == 0 || !strings.EqualFold(strings.TrimSpace(label.Text()), field) {
			return true
		}

		inner := cell.Find("table td").First()
		if inner.Length() == 0 {
			return true
		}

		raw := firstTextNode(inner)
		if raw == "" || strings.HasPrefix(strings.ToLower(raw), unknownToken) {
			// Placeholder value; prefer the next candidate cell.
			return true
		}

		value = raw
		return false
	})
	return value
}

// firstTextNode returns the first non-blank raw text node directly under
// sel, trimmed. Child elements are not descended into: the field value is
// the cell's own text, not its markup.
func firstTextNode(sel *goquery.Selection) string {
	for _, node := range sel.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				continue
			}
			if text := strings.TrimSpace(c.Data); text != "" {
				return text
			}
		}
	}
	return ""
}

// extractDescription collects the species blurb: the contiguous run of
// paragraphs that follows the leading run of tables among the content
// container's direct children. Blank paragraphs are dropped; the rest are
// joined with newlines. Collection stops at the first non-paragraph
// element after the table run.
func extractDescription(doc *goquery.Document) (string, error) {
	content := doc.Find("div.mw-parser-output").First()
	if content.Length() == 0 {
		return "", pokedex.Errorf(pokedex.EEXTRACT, "content container not found")
	}

	var paragraphs []string
	leadingTables := true
	content.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		name := goquery.NodeName(child)
		if leadingTables {
			if name == "table" {
				return true
			}
			leadingTables = false
		}
		if name != "p" {
			return false
		}
		if text := strings.TrimSpace(child.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
		return true
	})

	return strings.Join(paragraphs, "\n"), nil
}

// extractTypes collects the species' type names from the info panel,
// preserving document order. The type row is the single-cell row whose
// first child's text starts with "type"; the names live in a sub-table
// nested table → row → first cell → table → row → cell below it.
// Placeholder entries and decorative artifacts (embedded newlines) are
// dropped. Returns nil when the row is absent or empty.
func extractTypes(panel *goquery.Selection) []string {
	var types []string
	panelRows(panel).Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() != 1 {
			return
		}
		cell := cells.First()
		if !isTypeCell(cell) {
			return
		}
		typeCells(cell).Each(func(_ int, tc *goquery.Selection) {
			name := strings.TrimSpace(tc.Text())
			if name == "" || strings.HasPrefix(strings.ToLower(name), unknownToken) {
				return
			}
			if strings.Contains(name, "\n") {
				return
			}
			types = append(types, name)
		})
	})
	return types
}

// panelRows returns the info panel's own rows, not rows of nested tables.
func panelRows(panel *goquery.Selection) *goquery.Selection {
	return panel.ChildrenFiltered("tbody").ChildrenFiltered("tr")
}

// isTypeCell reports whether the cell's first child element labels the
// type row.
func isTypeCell(cell *goquery.Selection) bool {
	first := cell.Children().First()
	if first.Length() == 0 {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(first.Text())), "type")
}

// typeCells drills into the nested sub-table holding the type names.
func typeCells(cell *goquery.Selection) *goquery.Selection {
	inner := cell.ChildrenFiltered("table").First()
	firstCell := inner.Find("tr").First().ChildrenFiltered("td").First()
	return firstCell.ChildrenFiltered("table").Find("tr").ChildrenFiltered("td")
}
