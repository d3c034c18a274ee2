package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pokedex"
	"github.com/fwojciec/pokedex/goquery"
	pokedexhttp "github.com/fwojciec/pokedex/http"
	"github.com/fwojciec/pokedex/singleflight"
	pokedexslog "github.com/fwojciec/pokedex/slog"
	"github.com/fwojciec/pokedex/sqlite"
)

// fetchRPS limits requests against the wiki. The wiki is a shared public
// resource; one request per second is the polite ceiling.
const fetchRPS = 1.0

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Wiki base URL. Set before calling Run().
	BaseURL string

	// Database path for the detail cache. Set before calling Run().
	DBPath string

	// SQLite database, opened only by commands that use the cache.
	DB *sqlite.DB

	fetcher pokedex.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		BaseURL: defaultBaseURL(),
		DBPath:  defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.fetcher != nil {
		if err := m.fetcher.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pokedex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pokedex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire the core: rate-limited, retrying fetcher feeding the extractors,
	// with the listing behind the single-flight cache.
	m.fetcher = pokedexhttp.NewRetryingFetcher(
		pokedexhttp.NewRateLimitedFetcher(pokedexhttp.NewFetcher(), fetchRPS),
	)
	deps.Catalog = pokedexslog.NewLoggingCatalogService(
		singleflight.NewCatalog(m.fetcher, goquery.NewListingExtractor(), m.BaseURL),
		logger,
	)
	deps.Details = pokedexslog.NewLoggingDetailService(
		goquery.NewDetailService(m.fetcher, m.BaseURL),
		logger,
	)

	// Detail lookups are cache-free by default; only warm opts into the
	// SQLite read-through cache.
	if cmd == "warm" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set POKEDEX_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		deps.DB = m.DB
		deps.CachedDetails = sqlite.NewDetailCache(m.DB, deps.Details)
	}

	return kongCtx.Run(deps)
}

func defaultBaseURL() string {
	if url := os.Getenv("POKEDEX_BASE_URL"); url != "" {
		return url
	}
	return pokedex.DefaultBaseURL
}

func defaultDBPath() string {
	if path := os.Getenv("POKEDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pokedex.db"
	}
	dir := filepath.Join(home, ".pokedex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pokedex.db")
}
