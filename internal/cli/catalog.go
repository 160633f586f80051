package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pkgid/internal/catalog"
)

// CatalogOptions holds flags shared by the catalog subcommands.
type CatalogOptions struct {
	*RootOptions
	DB string // catalog database path; empty means the configured path
}

// RecordPayload is one catalog record in JSON output.
type RecordPayload struct {
	Reference       string `json:"reference"`
	PackageID       string `json:"package_id"`
	RecipeRevision  string `json:"recipe_revision,omitempty"`
	PackageRevision string `json:"package_revision,omitempty"`
	Token           string `json:"token,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	Canonical       string `json:"canonical,omitempty"`
}

func recordPayload(rec catalog.Record, withCanonical bool) RecordPayload {
	p := RecordPayload{
		Reference:       rec.Reference,
		PackageID:       rec.PackageID,
		RecipeRevision:  rec.RecipeRevision,
		PackageRevision: rec.PackageRevision,
		Token:           rec.Token,
		CreatedAt:       rec.CreatedAt,
	}
	if withCanonical {
		p.Canonical = rec.Canonical
	}
	return p
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Record and fetch built binaries",
		Long: `Record built binaries in the catalog database and look them up by
their computed identifiers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "catalog database path (default from configuration)")

	cmd.AddCommand(newCatalogAddCommand(opts))
	cmd.AddCommand(newCatalogGetCommand(opts))
	cmd.AddCommand(newCatalogListCommand(opts))

	return cmd
}

// openCatalog opens the catalog database named by --db or the configuration.
func openCatalog(opts *CatalogOptions, formatter *OutputFormatter) (*catalog.Catalog, error) {
	path := opts.DB
	if path == "" {
		cfg, err := resolveConfig(opts.RootOptions)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return nil, NewExitError(ExitCommandError, err.Error())
		}
		path = cfg.CatalogPath
	}

	cat, err := catalog.Open(path)
	if err != nil {
		message := fmt.Sprintf("opening catalog %s: %v", path, err)
		_ = formatter.Error(ErrCodeCatalog, message, nil)
		return nil, NewExitError(ExitCommandError, message)
	}
	return cat, nil
}

// AddResult is the catalog add command's success payload.
type AddResult struct {
	Reference       string `json:"reference"`
	PackageID       string `json:"package_id"`
	Token           string `json:"token"`
	PackageRevision string `json:"package_revision,omitempty"`
	Inserted        bool   `json:"inserted"`
}

func newCatalogAddCommand(opts *CatalogOptions) *cobra.Command {
	var artifact string

	cmd := &cobra.Command{
		Use:   "add <eval-dir>",
		Short: "Record a built binary",
		Long: `Evaluate the documents in the directory and record the resulting
binary in the catalog. With --artifact the built artifact is hashed and
stored as the package revision. Recording the same (reference, identifier)
twice is a no-op; the first record wins.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogAdd(opts, args[0], artifact, cmd)
		},
	}

	cmd.Flags().StringVar(&artifact, "artifact", "", "built artifact to hash as the package revision")

	return cmd
}

func runCatalogAdd(opts *CatalogOptions, dir, artifact string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	res, _, err := evaluateDir(opts.RootOptions, formatter, dir)
	if err != nil {
		return err
	}

	var packageRevision string
	if artifact != "" {
		packageRevision, err = catalog.HashArtifactFile(artifact)
		if err != nil {
			message := fmt.Sprintf("hashing artifact: %v", err)
			_ = formatter.Error(ErrCodeGeneric, message, nil)
			return NewExitError(ExitCommandError, message)
		}
		formatter.VerboseLog("Artifact hash: %s", packageRevision)
	}

	cat, err := openCatalog(opts, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	inserted, err := cat.Put(cmd.Context(), catalog.Record{
		Reference:       res.Ref.String(),
		PackageID:       res.PackageID,
		Canonical:       res.Info.Dumps(),
		RecipeRevision:  res.Info.RecipeHash(),
		PackageRevision: packageRevision,
		Token:           res.Token,
	})
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(AddResult{
			Reference:       res.Ref.String(),
			PackageID:       res.PackageID,
			Token:           res.Token,
			PackageRevision: packageRevision,
			Inserted:        inserted,
		})
	}

	if inserted {
		fmt.Fprintf(formatter.Writer, "✓ Recorded %s: %s\n", res.Ref, res.PackageID)
	} else {
		fmt.Fprintf(formatter.Writer, "✓ Already recorded %s: %s\n", res.Ref, res.PackageID)
	}
	return nil
}

func newCatalogGetCommand(opts *CatalogOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <eval-dir>",
		Short: "Look up the binary for an evaluation",
		Long: `Evaluate the documents in the directory and look its identifier up
in the catalog. A miss prints the missing-binary diagnostic; a hit whose
stored recipe revision no longer matches the current recipe is reported as
stale. Both cases exit nonzero.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogGet(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCatalogGet(opts *CatalogOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	res, _, err := evaluateDir(opts.RootOptions, formatter, dir)
	if err != nil {
		return err
	}

	cat, err := openCatalog(opts, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	ctx := cmd.Context()
	switch err := cat.Validate(ctx, res.Ref.String(), res.PackageID, res.Info.RecipeHash()); {
	case errors.Is(err, catalog.ErrNotFound):
		diagnostic := catalog.MissingDiagnostic(res.Ref, res.PackageID, res.Info)
		if formatter.Format == "json" {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("no binary for %s: %s", res.Ref, res.PackageID), diagnostic)
		} else {
			fmt.Fprint(formatter.Writer, diagnostic)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("no binary for %s: %s", res.Ref, res.PackageID))

	case err != nil:
		var stale *catalog.StaleError
		if errors.As(err, &stale) {
			_ = formatter.Error(ErrCodeStale, stale.Error(), nil)
			return NewExitError(ExitFailure, stale.Error())
		}
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	rec, err := cat.Get(ctx, res.Ref.String(), res.PackageID)
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(recordPayload(rec, opts.Verbose))
	}

	fmt.Fprintf(formatter.Writer, "✓ %s: %s\n", rec.Reference, rec.PackageID)
	if rec.PackageRevision != "" {
		fmt.Fprintf(formatter.Writer, "  package revision: %s\n", rec.PackageRevision)
	}
	fmt.Fprintf(formatter.Writer, "  recorded: %s (token %s)\n", rec.CreatedAt, rec.Token)
	if opts.Verbose {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprint(formatter.Writer, rec.Canonical)
	}
	return nil
}

func newCatalogListCommand(opts *CatalogOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list <reference>",
		Short:         "List recorded binaries for a reference",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, args[0], cmd)
		},
	}

	return cmd
}

// ListResult is the catalog list command's success payload.
type ListResult struct {
	Reference string          `json:"reference"`
	Binaries  []RecordPayload `json:"binaries"`
}

func runCatalogList(opts *CatalogOptions, reference string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := openCatalog(opts, formatter)
	if err != nil {
		return err
	}
	defer cat.Close()

	records, err := cat.List(cmd.Context(), reference)
	if err != nil {
		_ = formatter.Error(ErrCodeCatalog, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if formatter.Format == "json" {
		result := ListResult{Reference: reference, Binaries: []RecordPayload{}}
		for _, rec := range records {
			result.Binaries = append(result.Binaries, recordPayload(rec, false))
		}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%d binary(ies) for %s\n", len(records), reference)
	for _, rec := range records {
		fmt.Fprintf(formatter.Writer, "  %s  recorded %s\n", rec.PackageID, rec.CreatedAt)
	}
	return nil
}
