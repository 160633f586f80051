package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pkgid/internal/eval"
)

// ModeListing is the modes command's success payload.
type ModeListing struct {
	Modes      []ModeEntry `json:"modes"`
	Transforms []ModeEntry `json:"transforms"`
}

// ModeEntry is one policy operation and its description.
type ModeEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewModesCommand creates the modes command.
func NewModesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List policy modes and settings transforms",
		Long: `List every requirement mode and settings transform a recipe's
packageId block may name, ordered from least to most sensitive.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModes(rootOpts, cmd)
		},
	}

	return cmd
}

func runModes(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	listing := ModeListing{}
	for _, m := range eval.Modes() {
		listing.Modes = append(listing.Modes, ModeEntry{Name: string(m), Description: m.Describe()})
	}
	for _, tr := range eval.Transforms() {
		listing.Transforms = append(listing.Transforms, ModeEntry{Name: string(tr), Description: tr.Describe()})
	}

	if formatter.Format == "json" {
		return formatter.Success(listing)
	}

	fmt.Fprintln(formatter.Writer, "Requirement modes (least to most sensitive):")
	for _, entry := range listing.Modes {
		fmt.Fprintf(formatter.Writer, "  %-24s %s\n", entry.Name, entry.Description)
	}
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintln(formatter.Writer, "Settings transforms:")
	for _, entry := range listing.Transforms {
		fmt.Fprintf(formatter.Writer, "  %-24s %s\n", entry.Name, entry.Description)
	}
	return nil
}
