package eval

import (
	"errors"
	"fmt"
)

// Code categorizes evaluation errors.
type Code string

const (
	// CodeUnknownMode reports a policy block naming a mode that does not exist.
	CodeUnknownMode Code = "UNKNOWN_MODE"

	// CodeUnknownTransform reports a policy block naming a settings transform
	// that does not exist.
	CodeUnknownTransform Code = "UNKNOWN_TRANSFORM"

	// CodeUnknownDependency reports a per-dependency override targeting a name
	// that is not in the resolved graph.
	CodeUnknownDependency Code = "UNKNOWN_DEPENDENCY"

	// CodeUndeclaredSetting reports a resolved setting the recipe never
	// declared.
	CodeUndeclaredSetting Code = "UNDECLARED_SETTING"

	// CodeUndeclaredOption reports a resolved option the recipe never declared.
	CodeUndeclaredOption Code = "UNDECLARED_OPTION"

	// CodeDuplicateRequirement reports two graph edges resolving to the same
	// dependency name.
	CodeDuplicateRequirement Code = "DUPLICATE_REQUIREMENT"

	// CodeGraphMismatch reports a graph document resolved for a different
	// recipe than the one being evaluated.
	CodeGraphMismatch Code = "GRAPH_MISMATCH"
)

// Error is an evaluation failure. No partial identifier accompanies it: an
// evaluation either produces a complete Result or an Error naming the recipe
// it aborted.
type Error struct {
	Code    Code
	Recipe  string
	Message string
}

func (e *Error) Error() string {
	if e.Recipe != "" {
		return fmt.Sprintf("%s: %s (recipe=%s)", e.Code, e.Message, e.Recipe)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the Code from an error chain, or "" when the chain holds no
// evaluation error.
func CodeOf(err error) Code {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsUnknownMode reports whether err is an unknown-mode or unknown-transform
// failure, the two ways a recipe can name a policy operation that does not
// exist.
func IsUnknownMode(err error) bool {
	code := CodeOf(err)
	return code == CodeUnknownMode || code == CodeUnknownTransform
}
