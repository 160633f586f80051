package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/pkgid/internal/binquery"
)

// undefinedValueText is how fingerprints render values that were never set.
const undefinedValueText = "None"

// CompileQuery compiles a binary query to a SQL predicate over the match
// table, for rows of an artifacts table aliased `a`. Every comparison
// becomes an EXISTS (or NOT EXISTS) subquery, so one artifact matches when
// all its compared keys line up. Values are always parameterized, never
// interpolated.
//
// The undefined contract carries over from the in-memory matcher: a stored
// fingerprint's undefined keys are "None" rows in the match table, and a key
// it never stored at all still compares as "None". Comparisons against the
// literal "None" therefore also consult key existence, so `=None` matches
// absent keys and `!=None` rejects them.
func CompileQuery(expr binquery.Expr) (string, []any, error) {
	switch node := expr.(type) {
	case binquery.Compare:
		sub := "EXISTS (SELECT 1 FROM matches m WHERE m.artifact_id = a.id AND m.key = ? AND m.value = ?)"
		if node.Value == undefinedValueText {
			keyed := "EXISTS (SELECT 1 FROM matches m WHERE m.artifact_id = a.id AND m.key = ?)"
			if node.Op == binquery.OpNotEqual {
				return "(NOT " + sub + " AND " + keyed + ")", []any{node.Key, node.Value, node.Key}, nil
			}
			return "(" + sub + " OR NOT " + keyed + ")", []any{node.Key, node.Value, node.Key}, nil
		}
		if node.Op == binquery.OpNotEqual {
			sub = "NOT " + sub
		}
		return sub, []any{node.Key, node.Value}, nil
	case binquery.And:
		return compileList(node.Terms, " AND ")
	case binquery.Or:
		return compileList(node.Terms, " OR ")
	case binquery.Not:
		inner, params, err := CompileQuery(node.Expr)
		if err != nil {
			return "", nil, err
		}
		return "NOT (" + inner + ")", params, nil
	default:
		return "", nil, fmt.Errorf("compile query: unsupported expression %T", expr)
	}
}

func compileList(terms []binquery.Expr, sep string) (string, []any, error) {
	if len(terms) == 0 {
		return "", nil, fmt.Errorf("compile query: empty boolean expression")
	}
	var parts []string
	var params []any
	for _, term := range terms {
		sql, termParams, err := CompileQuery(term)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, termParams...)
	}
	return "(" + strings.Join(parts, sep) + ")", params, nil
}

// Search returns the stored binaries of a reference whose settings/options
// match the query, ordered by package ID for stable output.
func (c *Catalog) Search(ctx context.Context, reference string, expr binquery.Expr) ([]Record, error) {
	predicate, params, err := CompileQuery(expr)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + recordColumns + " FROM artifacts a WHERE a.reference = ? AND " +
		predicate + " ORDER BY a.package_id"
	args := append([]any{reference}, params...)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", reference, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", reference, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search %s: %w", reference, err)
	}
	return records, nil
}
