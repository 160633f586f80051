package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/pkgid/internal/ident"
)

// InspectResult is the inspect command's success payload.
type InspectResult struct {
	PackageID    string `json:"package_id"`
	Settings     int    `json:"settings"`
	Options      int    `json:"options"`
	Requires     int    `json:"requires"`
	FullRequires int    `json:"full_requires"`
	RecipeHash   string `json:"recipe_hash,omitempty"`
	RoundTrip    bool   `json:"round_trip"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <fingerprint-file>",
		Short: "Inspect a persisted fingerprint file",
		Long: `Parse a canonical fingerprint file and report its identifier.

The file is parsed back into fingerprint structures, re-serialized, and
compared byte-for-byte against the original: a mismatch means the file was
edited or corrupted since it was written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		message := fmt.Sprintf("reading fingerprint file: %v", err)
		_ = formatter.Error(ErrCodeGeneric, message, nil)
		return NewExitError(ExitCommandError, message)
	}

	info, err := ident.Loads(string(data))
	if err != nil {
		message := fmt.Sprintf("parsing %s: %v", path, err)
		_ = formatter.Error(ErrCodeFingerprint, message, nil)
		return NewExitError(ExitFailure, message)
	}

	result := InspectResult{
		PackageID:    info.PackageID(),
		Settings:     info.Settings().Len(),
		Options:      info.Options().Len(),
		Requires:     info.Requires().Len(),
		FullRequires: len(info.FullRequires()),
		RecipeHash:   info.RecipeHash(),
		RoundTrip:    info.Dumps() == string(data),
	}

	if !result.RoundTrip {
		message := fmt.Sprintf("%s does not re-serialize to its own content", path)
		_ = formatter.Error(ErrCodeRoundTrip, message, result)
		return NewExitError(ExitFailure, message)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "package_id: %s\n", result.PackageID)
	fmt.Fprintf(formatter.Writer, "settings:   %d\n", result.Settings)
	fmt.Fprintf(formatter.Writer, "options:    %d\n", result.Options)
	fmt.Fprintf(formatter.Writer, "requires:   %d (closure %d)\n", result.Requires, result.FullRequires)
	if result.RecipeHash != "" {
		fmt.Fprintf(formatter.Writer, "recipe:     %s\n", result.RecipeHash)
	}
	if opts.Verbose {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprint(formatter.Writer, info.Dumps())
	}
	return nil
}
