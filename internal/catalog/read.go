package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound reports a lookup that matched no stored binary.
var ErrNotFound = errors.New("no matching binary in catalog")

// StaleError reports a binary whose identifier matches but whose recipe
// revision does not: the recipe changed since the binary was built.
type StaleError struct {
	Reference string
	PackageID string
	Stored    string
	Current   string
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("binary %s:%s was built from recipe revision %q, current is %q",
		e.Reference, e.PackageID, e.Stored, e.Current)
}

const recordColumns = "reference, package_id, canonical, recipe_revision, package_revision, token, created_at"

func scanRecord(row interface{ Scan(...any) error }) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.Reference,
		&rec.PackageID,
		&rec.Canonical,
		&rec.RecipeRevision,
		&rec.PackageRevision,
		&rec.Token,
		&rec.CreatedAt,
	)
	return rec, err
}

// Get returns the stored binary for (reference, packageID), or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, reference, packageID string) (Record, error) {
	row := c.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM artifacts WHERE reference = ? AND package_id = ?",
		reference, packageID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get %s:%s: %w", reference, packageID, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get %s:%s: %w", reference, packageID, err)
	}
	return rec, nil
}

// List returns every stored binary of a reference, ordered by package ID for
// stable output.
func (c *Catalog) List(ctx context.Context, reference string) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM artifacts WHERE reference = ? ORDER BY package_id",
		reference)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", reference, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", reference, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", reference, err)
	}
	return records, nil
}

// Validate checks that the stored binary for (reference, packageID) still
// belongs to the current recipe revision. It returns ErrNotFound when no
// binary is stored and a StaleError when one is stored but its recipe
// revision differs.
func (c *Catalog) Validate(ctx context.Context, reference, packageID, currentRevision string) error {
	rec, err := c.Get(ctx, reference, packageID)
	if err != nil {
		return err
	}
	if rec.RecipeRevision != currentRevision {
		return &StaleError{
			Reference: reference,
			PackageID: packageID,
			Stored:    rec.RecipeRevision,
			Current:   currentRevision,
		}
	}
	return nil
}
