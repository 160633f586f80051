package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/pkgid/internal/ident"
)

// Record is one stored binary.
type Record struct {
	Reference       string
	PackageID       string
	Canonical       string
	RecipeRevision  string
	PackageRevision string
	Token           string
	CreatedAt       string
}

// Put records a built binary. The write is idempotent on (reference,
// package_id): recording the same binary twice returns inserted=false and
// leaves the first record in place.
//
// The canonical text must parse; its full settings and options are flattened
// into the match table that backs Search.
func (c *Catalog) Put(ctx context.Context, rec Record) (inserted bool, err error) {
	info, err := ident.Loads(rec.Canonical)
	if err != nil {
		return false, fmt.Errorf("put %s:%s: canonical text: %w", rec.Reference, rec.PackageID, err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("put %s:%s: %w", rec.Reference, rec.PackageID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO artifacts
		(reference, package_id, canonical, recipe_revision, package_revision, token)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(reference, package_id) DO NOTHING
	`,
		rec.Reference,
		rec.PackageID,
		rec.Canonical,
		rec.RecipeRevision,
		rec.PackageRevision,
		rec.Token,
	)
	if err != nil {
		return false, fmt.Errorf("put %s:%s: %w", rec.Reference, rec.PackageID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put %s:%s: %w", rec.Reference, rec.PackageID, err)
	}
	if rows == 0 {
		return false, nil
	}

	var artifactID int64
	if artifactID, err = res.LastInsertId(); err != nil {
		return false, fmt.Errorf("put %s:%s: %w", rec.Reference, rec.PackageID, err)
	}
	if err := insertMatches(ctx, tx, artifactID, info); err != nil {
		return false, fmt.Errorf("put %s:%s: %w", rec.Reference, rec.PackageID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("put %s:%s: %w", rec.Reference, rec.PackageID, err)
	}
	return true, nil
}

// insertMatches flattens the fingerprint's full settings and options into
// match rows, undefined values rendered as "None" so queries against them
// behave like the in-memory matcher.
func insertMatches(ctx context.Context, tx *sql.Tx, artifactID int64, info *ident.PackageInfo) error {
	insert := func(kind, key, value string) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO matches (artifact_id, kind, key, value) VALUES (?, ?, ?, ?)",
			artifactID, kind, key, value)
		return err
	}
	for _, key := range info.FullSettings().Keys() {
		if err := insert("setting", key, info.FullSettings().GetText(key)); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(info.FullOptions().Dumps(), "\n") {
		if line == "" {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		if err := insert("option", key, value); err != nil {
			return err
		}
	}
	return nil
}
