package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pokedex"
)

// Compile-time interface verification.
var _ pokedex.DetailService = (*DetailCache)(nil)

// DetailCache is a read-through cache over a DetailService. A hit serves
// the stored record without touching the wiki; a miss delegates to the
// wrapped service and persists the result. This is the opt-in caching
// configuration of the detail path.
type DetailCache struct {
	db   *DB
	next pokedex.DetailService
}

// NewDetailCache creates a DetailCache over next.
func NewDetailCache(db *DB, next pokedex.DetailService) *DetailCache {
	return &DetailCache{db: db, next: next}
}

// GetDetails returns the cached record for ref, fetching and storing it
// through the wrapped service on a miss.
func (c *DetailCache) GetDetails(ctx context.Context, ref pokedex.Reference) (*pokedex.Details, error) {
	d, err := c.find(ctx, ref.Number)
	if err == nil {
		return d, nil
	}
	if pokedex.ErrorCode(err) != pokedex.ENOTFOUND {
		return nil, err
	}

	d, err = c.next.GetDetails(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := c.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Put upserts a detail record. The write is skipped when the stored
// content hash already matches, so re-warming unchanged pages leaves the
// fetched_at timestamp of the original extraction intact.
func (c *DetailCache) Put(ctx context.Context, d *pokedex.Details) error {
	if err := d.Validate(); err != nil {
		return err
	}

	hash := hashDetails(d)
	var stored string
	err := c.db.QueryRowContext(ctx, `
		SELECT content_hash FROM details WHERE number = ?
	`, d.Number).Scan(&stored)
	if err == nil && stored == hash {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO details (number, name, description, types, catch_rate,
			base_exp_yield, base_friendship, hatch_time_min, hatch_time_max,
			content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (number) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			types = excluded.types,
			catch_rate = excluded.catch_rate,
			base_exp_yield = excluded.base_exp_yield,
			base_friendship = excluded.base_friendship,
			hatch_time_min = excluded.hatch_time_min,
			hatch_time_max = excluded.hatch_time_max,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, d.Number, d.Name, d.Description, strings.Join(d.Types, "\n"),
		d.CatchRate, d.BaseExpYield, d.BaseFriendship,
		d.HatchTimeMin, d.HatchTimeMax,
		hash, time.Now().UTC().Format(time.RFC3339))

	return err
}

// find retrieves a cached record by number.
// Returns ENOTFOUND when the record is not cached.
func (c *DetailCache) find(ctx context.Context, number int) (*pokedex.Details, error) {
	var d pokedex.Details
	var types string

	err := c.db.QueryRowContext(ctx, `
		SELECT number, name, description, types, catch_rate,
			base_exp_yield, base_friendship, hatch_time_min, hatch_time_max
		FROM details
		WHERE number = ?
	`, number).Scan(&d.Number, &d.Name, &d.Description, &types,
		&d.CatchRate, &d.BaseExpYield, &d.BaseFriendship,
		&d.HatchTimeMin, &d.HatchTimeMax)

	if err == sql.ErrNoRows {
		return nil, pokedex.Errorf(pokedex.ENOTFOUND, "details for #%d not cached", number)
	}
	if err != nil {
		return nil, err
	}

	if types != "" {
		d.Types = strings.Split(types, "\n")
	}

	return &d, nil
}

// hashDetails computes an xxHash fingerprint of the record's extracted
// content, used for change detection on re-warm.
func hashDetails(d *pokedex.Details) string {
	h := xxhash.New()
	fmt.Fprintf(h, "%d\x1f%s\x1f%s\x1f%s\x1f%d\x1f%d\x1f%d\x1f%d\x1f%d",
		d.Number, d.Name, d.Description, strings.Join(d.Types, "\n"),
		d.CatchRate, d.BaseExpYield, d.BaseFriendship,
		d.HatchTimeMin, d.HatchTimeMax)
	return hex.EncodeToString(h.Sum(nil))
}
