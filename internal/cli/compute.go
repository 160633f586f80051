package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ComputeOptions holds flags for the compute command.
type ComputeOptions struct {
	*RootOptions
	Output string // fingerprint file path
}

// ComputeResult is the compute command's success payload.
type ComputeResult struct {
	Reference  string `json:"reference"`
	PackageID  string `json:"package_id"`
	Token      string `json:"token"`
	RecipeHash string `json:"recipe_hash"`
	Canonical  string `json:"canonical"`
}

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComputeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compute <eval-dir>",
		Short: "Compute the package identifier for an evaluation",
		Long: `Compute the package identifier for one resolved graph node.

Loads the recipe and graph documents from the directory, applies the
recipe's packageId policy over the process configuration and prints the
resulting identifier. With --output the canonical fingerprint text is
written next to the identifier for later inspection.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the fingerprint file to this path")

	return cmd
}

func runCompute(opts *ComputeOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	res, _, err := evaluateDir(opts.RootOptions, formatter, dir)
	if err != nil {
		return err
	}

	canonical := res.Info.Dumps()

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(canonical), 0644); err != nil {
			message := fmt.Sprintf("writing fingerprint file: %v", err)
			_ = formatter.Error(ErrCodeWriteFailed, message, nil)
			return NewExitError(ExitCommandError, message)
		}
		formatter.VerboseLog("Wrote fingerprint to %s", opts.Output)
	}

	if formatter.Format == "json" {
		return formatter.Success(ComputeResult{
			Reference:  res.Ref.String(),
			PackageID:  res.PackageID,
			Token:      res.Token,
			RecipeHash: res.Info.RecipeHash(),
			Canonical:  canonical,
		})
	}

	fmt.Fprintf(formatter.Writer, "%s: %s\n", res.Ref, res.PackageID)
	if opts.Verbose {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprint(formatter.Writer, canonical)
	}
	return nil
}
