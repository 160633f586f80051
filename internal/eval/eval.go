package eval

import (
	"fmt"

	"github.com/roach88/pkgid/internal/ident"
	"github.com/roach88/pkgid/internal/recipe"
)

// Evaluator computes package identifiers under one process configuration.
// It holds no per-evaluation state, so one Evaluator serves any number of
// concurrent Evaluate calls.
type Evaluator struct {
	cfg    Config
	tokens TokenGenerator
}

// New returns an Evaluator. A nil token generator defaults to UUIDv7 tokens.
func New(cfg Config, tokens TokenGenerator) *Evaluator {
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}
	return &Evaluator{cfg: cfg, tokens: tokens}
}

// Result is one completed evaluation.
type Result struct {
	// Ref is the evaluated node's reference, as resolved.
	Ref ident.Ref

	// PackageID is the computed binary identifier.
	PackageID string

	// Token is the evaluation token stamped on catalog records.
	Token string

	// Info is the fingerprint state behind the identifier. Treat it as
	// immutable: the identifier was computed from it.
	Info *ident.PackageInfo
}

// Evaluate computes the package identifier for one graph node. Any failure
// aborts the evaluation with the recipe name attached; no partial identifier
// is ever returned.
func (e *Evaluator) Evaluate(rec *recipe.Recipe, g *recipe.Graph) (*Result, error) {
	res, err := e.evaluate(rec, g)
	if err != nil {
		if ee, ok := err.(*Error); ok && ee.Recipe == "" {
			ee.Recipe = rec.Ref().String()
		}
		return nil, err
	}
	return res, nil
}

func (e *Evaluator) evaluate(rec *recipe.Recipe, g *recipe.Graph) (*Result, error) {
	if g.Reference.Name != rec.Name || string(g.Reference.Version) != rec.Version ||
		g.Reference.User != rec.User || g.Reference.Channel != rec.Channel {
		return nil, &Error{
			Code:    CodeGraphMismatch,
			Message: fmt.Sprintf("graph resolved for %s", g.Reference),
		}
	}

	info, err := e.seed(rec, g)
	if err != nil {
		return nil, err
	}

	applyDefaultTransforms(info)
	if err := e.applyPolicy(rec.Policy, info); err != nil {
		return nil, err
	}

	return &Result{
		Ref:       g.Reference,
		PackageID: info.PackageID(),
		Token:     e.tokens.Generate(),
		Info:      info,
	}, nil
}

// seed builds the fingerprint state from the resolved documents: declared
// settings in declaration order, declared options with graph values over the
// recipe defaults, dependency option groups in edge order, one requirement
// entry per edge.
func (e *Evaluator) seed(rec *recipe.Recipe, g *recipe.Graph) (*ident.PackageInfo, error) {
	resolved := make(map[string]ident.Value, len(g.Settings))
	for _, sv := range g.Settings {
		resolved[sv.Key] = sv.Value
	}
	settings := ident.NewSettings()
	for _, key := range rec.Settings {
		settings.Set(key, resolved[key])
		delete(resolved, key)
	}
	for _, sv := range g.Settings {
		if _, undeclared := resolved[sv.Key]; undeclared {
			return nil, &Error{
				Code:    CodeUndeclaredSetting,
				Message: fmt.Sprintf("setting %q is not declared by the recipe", sv.Key),
			}
		}
	}

	declared := make(map[string]bool, len(rec.Options))
	options := ident.NewOptions()
	for _, od := range rec.Options {
		options.Set(od.Name, od.Default)
		declared[od.Name] = true
	}
	for _, ov := range g.Options {
		if !declared[ov.Name] {
			return nil, &Error{
				Code:    CodeUndeclaredOption,
				Message: fmt.Sprintf("option %q is not declared by the recipe", ov.Name),
			}
		}
		options.Set(ov.Name, ov.Value)
	}

	depOptions := make(map[string][]recipe.OptionValue, len(g.DepOptions))
	for _, group := range g.DepOptions {
		depOptions[group.Dependency] = group.Options
	}
	for _, edge := range g.Edges {
		for _, ov := range depOptions[edge.Ref.Name] {
			options.SetPackage(edge.Ref.Name, ov.Name, ov.Value)
		}
		delete(depOptions, edge.Ref.Name)
	}
	for dep := range depOptions {
		return nil, &Error{
			Code:    CodeUnknownDependency,
			Message: fmt.Sprintf("option group for %q matches no graph edge", dep),
		}
	}

	info := ident.NewPackageInfo(settings, options)
	info.SetRecipeHash(g.RecipeHash)
	for _, ev := range g.Env {
		info.Env().Set(ev.Name, ev.Value)
	}

	for _, edge := range g.Edges {
		full := edge.PackageRef
		if !e.cfg.RevisionsEnabled {
			full.Ref.Revision = ""
			full.Revision = ""
		}
		if _, err := info.AddRequirement(full, !edge.Direct); err != nil {
			return nil, &Error{Code: CodeDuplicateRequirement, Message: err.Error()}
		}
	}
	return info, nil
}

// applyPolicy runs the recipe's packageId block: the global mode (or the
// process default) over every entry, then per-dependency overrides, then
// settings transforms, with headerOnly collapsing everything last.
func (e *Evaluator) applyPolicy(policy recipe.Policy, info *ident.PackageInfo) error {
	mode := e.cfg.DefaultMode
	if policy.Mode != "" {
		var err error
		if mode, err = ParseMode(policy.Mode); err != nil {
			return err
		}
	}
	for _, entry := range info.Requires().Items() {
		mode.apply(entry, e.cfg)
	}

	for _, override := range policy.Requirements {
		entry, ok := info.Requires().Get(override.Dependency)
		if !ok {
			return &Error{
				Code:    CodeUnknownDependency,
				Message: fmt.Sprintf("packageId override targets unknown dependency %q", override.Dependency),
			}
		}
		m, err := ParseMode(override.Mode)
		if err != nil {
			return err
		}
		m.apply(entry, e.cfg)
	}

	for _, name := range policy.Settings {
		t, err := ParseTransform(name)
		if err != nil {
			return err
		}
		t.apply(info)
	}

	if policy.HeaderOnly {
		info.HeaderOnly()
	}
	return nil
}
