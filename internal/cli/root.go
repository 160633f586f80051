package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pkgid/internal/eval"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // process configuration file (optional)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Error codes for failures that originate in the CLI itself. Document
// loading reuses the loader's E0xx/E1xx codes; evaluation failures carry
// their own named codes.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeNoGraph     = "E113" // No resolved graph document

	ErrCodeFingerprint = "FINGERPRINT_PARSE"   // Malformed fingerprint file
	ErrCodeRoundTrip   = "ROUND_TRIP_MISMATCH" // Fingerprint does not re-serialize byte-identically
	ErrCodeQuerySyntax = "QUERY_SYNTAX"        // Malformed binary query
	ErrCodeCatalog     = "CATALOG_ERROR"       // Catalog/database failure
	ErrCodeNotFound    = "NO_MATCHING_BINARY"  // No catalog record for the identifier
	ErrCodeStale       = "STALE_BINARY"        // Record exists but recipe revision differs
)

// NewRootCommand creates the root command for the pkgid CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pkgid",
		Short: "pkgid - binary compatibility identifiers",
		Long:  "Compute, inspect and catalog package identifiers for built binaries.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "configuration file path")

	// Add subcommands
	cmd.AddCommand(NewComputeCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewModesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newFormatter builds the output formatter for a command invocation.
// Verbose logs go to stderr to avoid corrupting JSON output.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// resolveConfig loads the process configuration, or the defaults when no
// --config file was given.
func resolveConfig(opts *RootOptions) (eval.Config, error) {
	if opts.ConfigPath == "" {
		return eval.DefaultConfig(), nil
	}
	return eval.LoadConfig(opts.ConfigPath)
}
