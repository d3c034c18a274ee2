package goquery_test

import (
	"testing"

	"github.com/fwojciec/pokedex"
	"github.com/fwojciec/pokedex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// infoPanel builds a species info panel with the bold-title anchor and the
// given rows.
func infoPanel(rows ...string) string {
	panel := `<table class="roundy"><tbody>
<tr><td>
<table><tr><td>
<table><tr><td><b>Bulbasaur</b></td></tr></table>
</td></tr></table>
</td></tr>
`
	for _, row := range rows {
		panel += row + "\n"
	}
	return panel + "</tbody></table>"
}

func fieldRow(label, value string) string {
	return `<tr><td><b>` + label + `</b><table><tr><td>` + value + `</td></tr></table></td></tr>`
}

func typeRow(cells string) string {
	return `<tr><td><b>Type</b>
<table><tr><td>
<table><tr>` + cells + `</tr></table>
</td></tr></table>
</td></tr>`
}

// detailPage assembles a full species page: info panel and decorative
// table first, then the description paragraphs, then the table of
// contents.
func detailPage(panel string, body string) string {
	return `<!DOCTYPE html>
<html><body><div class="mw-parser-output">
` + panel + `
<table><tr><td>Decorative sidebar</td></tr></table>
` + body + `
</div></body></html>`
}

var bulbasaur = pokedex.Reference{Number: 1, Name: "Bulbasaur"}

func TestDetailExtractor_ExtractDetails(t *testing.T) {
	t.Parallel()

	t.Run("extracts a fully populated record", func(t *testing.T) {
		t.Parallel()

		panel := infoPanel(
			typeRow(`<td>Grass</td><td>Poison</td>`),
			fieldRow("Catch rate", `45<small> (5.9%)</small>`),
			fieldRow("Base experience yield", "64"),
			fieldRow("Hatch time", "20 - 21"),
			fieldRow("Base friendship", "50"),
		)
		html := detailPage(panel, `<p> Bulbasaur is a dual-type Grass/Poison Pokémon. </p>
<p>   </p>
<p>It is one of the Kanto starters.</p>
<div id="toc">Contents</div>
<p>Not part of the description.</p>`)

		e := goquery.NewDetailExtractor()
		d, err := e.ExtractDetails(html, bulbasaur)

		require.NoError(t, err)
		assert.Equal(t, bulbasaur, d.Reference)
		assert.Equal(t, "Bulbasaur is a dual-type Grass/Poison Pokémon.\nIt is one of the Kanto starters.", d.Description)
		assert.Equal(t, []string{"Grass", "Poison"}, d.Types)
		assert.Equal(t, 45, d.CatchRate)
		assert.Equal(t, 64, d.BaseExpYield)
		assert.Equal(t, 50, d.BaseFriendship)
		assert.Equal(t, 20, d.HatchTimeMin)
		assert.Equal(t, 21, d.HatchTimeMax)
	})

	t.Run("defaults numeric fields to the sentinel when absent", func(t *testing.T) {
		t.Parallel()

		html := detailPage(infoPanel(), `<p>A species with a bare panel.</p>`)

		e := goquery.NewDetailExtractor()
		d, err := e.ExtractDetails(html, bulbasaur)

		require.NoError(t, err)
		assert.Equal(t, pokedex.UnknownValue, d.CatchRate)
		assert.Equal(t, pokedex.UnknownValue, d.BaseExpYield)
		assert.Equal(t, pokedex.UnknownValue, d.BaseFriendship)
		assert.Equal(t, pokedex.UnknownValue, d.HatchTimeMin)
		assert.Equal(t, pokedex.UnknownValue, d.HatchTimeMax)
		assert.Empty(t, d.Types)
	})

	t.Run("skips placeholder field values in favor of the next candidate", func(t *testing.T) {
		t.Parallel()

		panel := infoPanel(
			fieldRow("Catch rate", "Unknown"),
			fieldRow("Catch rate", "45"),
		)
		html := detailPage(panel, `<p>Blurb.</p>`)

		e := goquery.NewDetailExtractor()
		d, err := e.ExtractDetails(html, bulbasaur)

		require.NoError(t, err)
		assert.Equal(t, 45, d.CatchRate)
	})

	t.Run("matches field labels case-insensitively", func(t *testing.T) {
		t.Parallel()

		panel := infoPanel(fieldRow("catch RATE", "45"))
		html := detailPage(panel, `<p>Blurb.</p>`)

		e := goquery.NewDetailExtractor()
		d, err := e.ExtractDetails(html, bulbasaur)

		require.NoError(t, err)
		assert.Equal(t, 45, d.CatchRate)
	})

	t.Run("drops placeholder and decorative type entries", func(t *testing.T) {
		t.Parallel()

		panel := infoPanel(typeRow(`<td>Grass</td><td>Unknown</td><td>Fire
Decorative</td>`))
		html := detailPage(panel, `<p>Blurb.</p>`)

		e := goquery.NewDetailExtractor()
		d, err := e.ExtractDetails(html, bulbasaur)

		require.NoError(t, err)
		assert.Equal(t, []string{"Grass"}, d.Types)
	})

	t.Run("fails with EEXTRACT when the info panel anchor is missing", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body><div class="mw-parser-output">
<table class="roundy"><tr><td>No title here</td></tr></table>
<p>Blurb.</p>
</div></body></html>`

		e := goquery.NewDetailExtractor()
		_, err := e.ExtractDetails(html, bulbasaur)

		require.Error(t, err)
		assert.Equal(t, pokedex.EEXTRACT, pokedex.ErrorCode(err))
		assert.Contains(t, pokedex.ErrorMessage(err), "not found")
	})

	t.Run("fails with EEXTRACT when the anchor is ambiguous", func(t *testing.T) {
		t.Parallel()

		html := detailPage(infoPanel()+"\n"+infoPanel(), `<p>Blurb.</p>`)

		e := goquery.NewDetailExtractor()
		_, err := e.ExtractDetails(html, bulbasaur)

		require.Error(t, err)
		assert.Equal(t, pokedex.EEXTRACT, pokedex.ErrorCode(err))
		assert.Contains(t, pokedex.ErrorMessage(err), "ambiguous")
	})

	t.Run("fails with EEXTRACT when the content container is missing", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html><html><body>` + infoPanel() + `</body></html>`

		e := goquery.NewDetailExtractor()
		_, err := e.ExtractDetails(html, bulbasaur)

		require.Error(t, err)
		assert.Equal(t, pokedex.EEXTRACT, pokedex.ErrorCode(err))
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		t.Parallel()

		panel := infoPanel(
			typeRow(`<td>Electric</td>`),
			fieldRow("Catch rate", "190"),
		)
		html := detailPage(panel, `<p>Pikachu blurb.</p>`)

		e := goquery.NewDetailExtractor()
		first, err := e.ExtractDetails(html, pokedex.Reference{Number: 25, Name: "Pikachu"})
		require.NoError(t, err)
		second, err := e.ExtractDetails(html, pokedex.Reference{Number: 25, Name: "Pikachu"})
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
