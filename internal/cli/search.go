package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pkgid/internal/binquery"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*CatalogOptions
	Query string
}

// SearchResult is the search command's success payload.
type SearchResult struct {
	Reference string          `json:"reference"`
	Query     string          `json:"query"`
	Binaries  []RecordPayload `json:"binaries"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{CatalogOptions: &CatalogOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "search <reference>",
		Short: "Query recorded binaries",
		Long: `Query the catalog for binaries of a reference matching a settings and
options predicate, e.g.:

  pkgid search "zlib/1.2.11" -q "os=Windows AND compiler.version=14"
  pkgid search "pkg/1.0@user/channel" -q "shared=True OR NOT build_type=Debug"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "binary query expression")
	cmd.Flags().StringVar(&opts.DB, "db", "", "catalog database path (default from configuration)")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func runSearch(opts *SearchOptions, reference string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	expr, err := binquery.Parse(opts.Query)
	if err != nil {
		_ = formatter.Error(ErrCodeQuerySyntax, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("Query: %s", binquery.String(expr))

	cat, err := openCatalog(opts.CatalogOptions, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	records, err := cat.Search(cmd.Context(), reference, expr)
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if len(records) == 0 {
		message := fmt.Sprintf("no binaries of %s match %q", reference, opts.Query)
		_ = formatter.Error(ErrCodeNotFound, message, nil)
		return NewExitError(ExitFailure, message)
	}

	if formatter.Format == "json" {
		result := SearchResult{Reference: reference, Query: opts.Query}
		for _, rec := range records {
			result.Binaries = append(result.Binaries, recordPayload(rec, false))
		}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%d binary(ies) of %s match\n", len(records), reference)
	for _, rec := range records {
		fmt.Fprintf(formatter.Writer, "  %s  recorded %s\n", rec.PackageID, rec.CreatedAt)
	}
	return nil
}
