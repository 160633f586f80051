package recipe

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/pkgid/internal/ident"
)

func requiredString(v cue.Value, field, code string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &LoadError{
			Code:    code,
			Message: fmt.Sprintf("%s is required", field),
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(code, err)
	}
	return s, nil
}

func optionalString(v cue.Value, field, code string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(code, err)
	}
	return s, nil
}

func optionalBool(v cue.Value, field, code string) (bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, formatCUEError(code, err)
	}
	return b, nil
}

func stringList(v cue.Value, field, code string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(code, err)
	}
	var items []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(code, err)
		}
		items = append(items, s)
	}
	return items, nil
}

// parseDocValue maps a document value to the identity model: null and the
// literal "None" both mean undefined, everything else must be a string.
func parseDocValue(fv cue.Value) (ident.Value, error) {
	if fv.Kind() == cue.NullKind {
		return ident.UndefinedValue(), nil
	}
	s, err := fv.String()
	if err != nil {
		return ident.Value{}, fmt.Errorf("values are strings or null: %v", err)
	}
	return ident.ParseValue(s), nil
}
