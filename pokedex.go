// Package pokedex extracts a structured Pokémon catalog from wiki pages.
// It turns the National Pokédex index page into an ordered list of
// references and individual species pages into full detail records, and
// serves the catalog through a memoized, concurrency-safe cache.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, singleflight/).
package pokedex
