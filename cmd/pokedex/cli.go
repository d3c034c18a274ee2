package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pokedex"
	"github.com/fwojciec/pokedex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	DB      *sqlite.DB
	Catalog pokedex.CatalogService
	Details pokedex.DetailService

	// CachedDetails is Details wrapped with the SQLite read-through cache.
	// Only wired for commands that opt into caching (warm).
	CachedDetails pokedex.DetailService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	List  ListCmd  `cmd:"" help:"List every species in the National Pokédex"`
	Show  ShowCmd  `cmd:"" help:"Show the detail record for one species"`
	Warm  WarmCmd  `cmd:"" help:"Prefetch every detail record into the local cache"`
	Serve ServeCmd `cmd:"" help:"Serve the catalog over HTTP"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Target string `arg:"" help:"Species name or Pokédex number"`
}

// WarmCmd is the "warm" subcommand.
type WarmCmd struct {
	Concurrency int `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}
