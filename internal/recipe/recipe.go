package recipe

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/pkgid/internal/ident"
)

// ParseRecipe parses a CUE value into a Recipe. The value is the recipe
// struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`recipe: { name: "liba", ... }`)
//	rec, err := ParseRecipe(v.LookupPath(cue.ParsePath("recipe")))
func ParseRecipe(v cue.Value) (*Recipe, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(ErrCodeRecipeDoc, err)
	}

	rec := &Recipe{}
	var err error

	rec.Name, err = requiredString(v, "name", ErrCodeRecipeDoc)
	if err != nil {
		return nil, err
	}
	rec.Version, err = requiredString(v, "version", ErrCodeRecipeDoc)
	if err != nil {
		return nil, err
	}
	rec.User, err = optionalString(v, "user", ErrCodeRecipeDoc)
	if err != nil {
		return nil, err
	}
	rec.Channel, err = optionalString(v, "channel", ErrCodeRecipeDoc)
	if err != nil {
		return nil, err
	}
	if rec.User == "" && rec.Channel != "" || rec.User != "" && rec.Channel == "" {
		return nil, &LoadError{
			Code:    ErrCodeRecipeDoc,
			Message: "user and channel come as a pair",
			Pos:     v.Pos(),
		}
	}

	rec.Settings, err = stringList(v, "settings", ErrCodeRecipeDoc)
	if err != nil {
		return nil, err
	}

	rec.Options, err = parseOptionDefaults(v)
	if err != nil {
		return nil, err
	}

	rec.Requires, err = parseDeclaredRequires(v)
	if err != nil {
		return nil, err
	}

	rec.Policy, err = parsePolicy(v)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// parseOptionDefaults extracts the declared options in document order.
func parseOptionDefaults(v cue.Value) ([]OptionDefault, error) {
	optVal := v.LookupPath(cue.ParsePath("options"))
	if !optVal.Exists() {
		return nil, nil
	}
	iter, err := optVal.Fields()
	if err != nil {
		return nil, formatCUEError(ErrCodeRecipeDoc, err)
	}
	var defaults []OptionDefault
	for iter.Next() {
		value, err := parseDocValue(iter.Value())
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeRecipeDoc,
				Message: fmt.Sprintf("option %q: %v", iter.Label(), err),
				Pos:     iter.Value().Pos(),
			}
		}
		defaults = append(defaults, OptionDefault{Name: iter.Label(), Default: value})
	}
	return defaults, nil
}

// parseDeclaredRequires extracts the declared requirement references.
func parseDeclaredRequires(v cue.Value) ([]ident.Ref, error) {
	reqVal := v.LookupPath(cue.ParsePath("requires"))
	if !reqVal.Exists() {
		return nil, nil
	}
	iter, err := reqVal.List()
	if err != nil {
		return nil, formatCUEError(ErrCodeRecipeDoc, err)
	}
	var refs []ident.Ref
	for iter.Next() {
		raw, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(ErrCodeRecipeDoc, err)
		}
		ref, err := ident.ParseRef(raw)
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeRecipeDoc,
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// parsePolicy extracts the packageId block.
func parsePolicy(v cue.Value) (Policy, error) {
	var policy Policy
	polVal := v.LookupPath(cue.ParsePath("packageId"))
	if !polVal.Exists() {
		return policy, nil
	}

	var err error
	policy.Mode, err = optionalString(polVal, "mode", ErrCodeRecipePolicy)
	if err != nil {
		return policy, err
	}
	policy.Settings, err = stringList(polVal, "settings", ErrCodeRecipePolicy)
	if err != nil {
		return policy, err
	}
	policy.HeaderOnly, err = optionalBool(polVal, "headerOnly", ErrCodeRecipePolicy)
	if err != nil {
		return policy, err
	}

	reqVal := polVal.LookupPath(cue.ParsePath("requirements"))
	if reqVal.Exists() {
		iter, err := reqVal.Fields()
		if err != nil {
			return policy, formatCUEError(ErrCodeRecipePolicy, err)
		}
		for iter.Next() {
			mode, err := iter.Value().String()
			if err != nil {
				return policy, formatCUEError(ErrCodeRecipePolicy, err)
			}
			policy.Requirements = append(policy.Requirements, RequirementMode{
				Dependency: iter.Label(),
				Mode:       mode,
			})
		}
	}
	return policy, nil
}
