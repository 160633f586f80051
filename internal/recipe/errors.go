package recipe

import (
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes for document loading. E0xx covers filesystem and CUE plumbing,
// E10x the recipe document, E11x the graph document.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	ErrCodeRecipeDoc    = "E101" // Invalid recipe document
	ErrCodeRecipePolicy = "E102" // Invalid packageId policy block
	ErrCodeGraphDoc     = "E111" // Invalid graph document
	ErrCodeGraphEdge    = "E112" // Invalid graph edge
)

// LoadError is a document loading error with an error code and, when CUE can
// supply one, a source position.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(code string, err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &LoadError{Code: code, Message: firstErr.Error(), Pos: positions[0]}
	}
	return &LoadError{Code: code, Message: firstErr.Error()}
}
