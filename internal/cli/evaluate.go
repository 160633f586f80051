package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/pkgid/internal/catalog"
	"github.com/roach88/pkgid/internal/eval"
	"github.com/roach88/pkgid/internal/recipe"
)

// evaluateDir loads the recipe and graph documents in dir and computes the
// package identifier under the process configuration. Errors are already
// rendered through the formatter; callers just propagate them.
//
// When the graph document carries no recipe hash, one is computed from the
// CUE sources in dir so standalone evaluations stay deterministic.
func evaluateDir(opts *RootOptions, formatter *OutputFormatter, dir string) (*eval.Result, eval.Config, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, cfg, NewExitError(ExitCommandError, err.Error())
	}

	docs, loadErrs := recipe.Load(dir, recipe.LoadModeFailFast)
	if len(loadErrs) > 0 {
		code, message := loadErrorParts(loadErrs[0])
		_ = formatter.Error(code, message, nil)
		return nil, cfg, NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
	}
	formatter.VerboseLog("Found %d CUE file(s) in %s", docs.FileCount, dir)

	if docs.Graph == nil {
		message := fmt.Sprintf("no graph document found in %s; evaluation needs a resolved graph", dir)
		_ = formatter.Error(ErrCodeNoGraph, message, nil)
		return nil, cfg, NewExitError(ExitCommandError, message)
	}

	if docs.Graph.RecipeHash == "" {
		hash, err := catalog.HashRecipeDir(dir)
		if err != nil {
			message := fmt.Sprintf("hashing recipe sources: %v", err)
			_ = formatter.Error(ErrCodeGeneric, message, nil)
			return nil, cfg, NewExitError(ExitCommandError, message)
		}
		formatter.VerboseLog("Recipe hash (computed from sources): %s", hash)
		docs.Graph.RecipeHash = hash
	}

	res, err := eval.New(cfg, nil).Evaluate(docs.Recipe, docs.Graph)
	if err != nil {
		code := string(eval.CodeOf(err))
		if code == "" {
			code = ErrCodeGeneric
		}
		_ = formatter.Error(code, err.Error(), nil)
		return nil, cfg, NewExitError(ExitFailure, err.Error())
	}

	return res, cfg, nil
}

// loadErrorParts extracts an error code and message from a loader error.
func loadErrorParts(err error) (string, string) {
	var loadErr *recipe.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return ErrCodeGeneric, err.Error()
}
