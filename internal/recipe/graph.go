package recipe

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/pkgid/internal/ident"
)

// ParseGraph parses a CUE value into a Graph. The value is the graph struct
// itself, typically `v.LookupPath(cue.ParsePath("graph"))`.
func ParseGraph(v cue.Value) (*Graph, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(ErrCodeGraphDoc, err)
	}

	g := &Graph{}

	raw, err := requiredString(v, "reference", ErrCodeGraphDoc)
	if err != nil {
		return nil, err
	}
	g.Reference, err = ident.ParseRef(raw)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGraphDoc, Message: err.Error(), Pos: v.Pos()}
	}

	g.Settings, err = parseSettingValues(v)
	if err != nil {
		return nil, err
	}
	g.Options, err = parseOptionValues(v.LookupPath(cue.ParsePath("options")))
	if err != nil {
		return nil, err
	}
	g.DepOptions, err = parseDependencyOptions(v)
	if err != nil {
		return nil, err
	}
	g.Edges, err = parseEdges(v)
	if err != nil {
		return nil, err
	}
	g.RecipeHash, err = optionalString(v, "recipeHash", ErrCodeGraphDoc)
	if err != nil {
		return nil, err
	}
	g.Env, err = parseEnv(v)
	if err != nil {
		return nil, err
	}

	return g, nil
}

func parseSettingValues(v cue.Value) ([]SettingValue, error) {
	setVal := v.LookupPath(cue.ParsePath("settings"))
	if !setVal.Exists() {
		return nil, nil
	}
	iter, err := setVal.Fields()
	if err != nil {
		return nil, formatCUEError(ErrCodeGraphDoc, err)
	}
	var settings []SettingValue
	for iter.Next() {
		value, err := parseDocValue(iter.Value())
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeGraphDoc,
				Message: fmt.Sprintf("setting %q: %v", iter.Label(), err),
				Pos:     iter.Value().Pos(),
			}
		}
		settings = append(settings, SettingValue{Key: iter.Label(), Value: value})
	}
	return settings, nil
}

func parseOptionValues(v cue.Value) ([]OptionValue, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(ErrCodeGraphDoc, err)
	}
	var options []OptionValue
	for iter.Next() {
		value, err := parseDocValue(iter.Value())
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeGraphDoc,
				Message: fmt.Sprintf("option %q: %v", iter.Label(), err),
				Pos:     iter.Value().Pos(),
			}
		}
		options = append(options, OptionValue{Name: iter.Label(), Value: value})
	}
	return options, nil
}

func parseDependencyOptions(v cue.Value) ([]DependencyOptions, error) {
	depVal := v.LookupPath(cue.ParsePath("dependencyOptions"))
	if !depVal.Exists() {
		return nil, nil
	}
	iter, err := depVal.Fields()
	if err != nil {
		return nil, formatCUEError(ErrCodeGraphDoc, err)
	}
	var groups []DependencyOptions
	for iter.Next() {
		options, err := parseOptionValues(iter.Value())
		if err != nil {
			return nil, err
		}
		groups = append(groups, DependencyOptions{Dependency: iter.Label(), Options: options})
	}
	return groups, nil
}

func parseEdges(v cue.Value) ([]Edge, error) {
	reqVal := v.LookupPath(cue.ParsePath("requires"))
	if !reqVal.Exists() {
		return nil, nil
	}
	iter, err := reqVal.List()
	if err != nil {
		return nil, formatCUEError(ErrCodeGraphEdge, err)
	}
	var edges []Edge
	for iter.Next() {
		edge, err := parseEdge(iter.Value())
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

func parseEdge(v cue.Value) (Edge, error) {
	var edge Edge

	raw, err := requiredString(v, "ref", ErrCodeGraphEdge)
	if err != nil {
		return edge, err
	}
	edge.Ref, err = ident.ParseRef(raw)
	if err != nil {
		return edge, &LoadError{Code: ErrCodeGraphEdge, Message: err.Error(), Pos: v.Pos()}
	}

	rrev, err := optionalString(v, "recipeRevision", ErrCodeGraphEdge)
	if err != nil {
		return edge, err
	}
	if rrev != "" {
		// The recipe revision may ride on the ref ("name/1.0#rrev") or on
		// its own field, but not disagree between the two.
		if edge.Ref.Revision != "" && edge.Ref.Revision != rrev {
			return edge, &LoadError{
				Code: ErrCodeGraphEdge,
				Message: fmt.Sprintf("edge %s: recipeRevision %q conflicts with revision in ref",
					edge.Ref, rrev),
				Pos: v.Pos(),
			}
		}
		edge.Ref.Revision = rrev
	}

	edge.PackageID, err = requiredString(v, "packageId", ErrCodeGraphEdge)
	if err != nil {
		return edge, err
	}
	edge.Revision, err = optionalString(v, "packageRevision", ErrCodeGraphEdge)
	if err != nil {
		return edge, err
	}

	directVal := v.LookupPath(cue.ParsePath("direct"))
	if !directVal.Exists() {
		return edge, &LoadError{
			Code:    ErrCodeGraphEdge,
			Message: fmt.Sprintf("edge %s: direct is required", edge.Ref),
			Pos:     v.Pos(),
		}
	}
	edge.Direct, err = directVal.Bool()
	if err != nil {
		return edge, formatCUEError(ErrCodeGraphEdge, err)
	}
	return edge, nil
}

func parseEnv(v cue.Value) ([]EnvVar, error) {
	envVal := v.LookupPath(cue.ParsePath("env"))
	if !envVal.Exists() {
		return nil, nil
	}
	iter, err := envVal.Fields()
	if err != nil {
		return nil, formatCUEError(ErrCodeGraphDoc, err)
	}
	var env []EnvVar
	for iter.Next() {
		value, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(ErrCodeGraphDoc, err)
		}
		env = append(env, EnvVar{Name: iter.Label(), Value: value})
	}
	return env, nil
}
