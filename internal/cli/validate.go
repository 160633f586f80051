package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pkgid/internal/recipe"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one structural problem in a document.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <eval-dir>",
		Short: "Validate recipe and graph documents without evaluating",
		Long: `Validate the CUE recipe and graph documents in a directory.

Performs structural checks only: no policy is applied and no identifier is
computed. Faster than compute for authoring feedback, and usable before the
resolver has produced a graph document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	docs, loadErrs := recipe.Load(dir, recipe.LoadModeCollectAll)

	// Plumbing errors (directory not found, no files, CUE build failure)
	// leave nothing to report on; they are command-level errors.
	if docs == nil && len(loadErrs) > 0 {
		code, message := loadErrorParts(loadErrs[0])
		_ = formatter.Error(code, message, nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", docs.FileCount, dir)
	if docs.Recipe != nil {
		formatter.VerboseLog("Validated recipe: %s", docs.Recipe.Ref())
	}
	if docs.Graph != nil {
		formatter.VerboseLog("Validated graph: %s (%d edge(s))", docs.Graph.Reference, len(docs.Graph.Edges))
	}

	if len(loadErrs) > 0 {
		return outputValidationErrors(formatter, convertLoadErrors(loadErrs))
	}

	return outputValidateSuccess(formatter)
}

// convertLoadErrors flattens loader errors into reportable entries.
func convertLoadErrors(errs []error) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, err := range errs {
		var loadErr *recipe.LoadError
		if errors.As(err, &loadErr) {
			entry := ValidationError{Code: loadErr.Code, Message: loadErr.Message}
			if loadErr.Pos.IsValid() {
				entry.File = loadErr.Pos.Filename()
				entry.Line = loadErr.Pos.Line()
			}
			out = append(out, entry)
			continue
		}
		out = append(out, ValidationError{Code: ErrCodeGeneric, Message: err.Error()})
	}
	return out
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ Documents valid")
	return nil
}

// outputValidationErrors outputs the collected document errors.
func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.File != "" {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", err.File, err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
