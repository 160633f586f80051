package recipe

import "github.com/roach88/pkgid/internal/ident"

// Recipe is the declarative recipe document.
type Recipe struct {
	Name     string
	Version  string
	User     string
	Channel  string
	Settings []string
	Options  []OptionDefault
	Requires []ident.Ref
	Policy   Policy
}

// Ref assembles the recipe's own reference, without a revision.
func (r *Recipe) Ref() ident.Ref {
	return ident.Ref{
		Name:    r.Name,
		Version: ident.Version(r.Version),
		User:    r.User,
		Channel: r.Channel,
	}
}

// OptionDefault is one declared option and its default value.
type OptionDefault struct {
	Name    string
	Default ident.Value
}

// Policy is the recipe's packageId block. All fields are optional; an empty
// policy means process defaults throughout.
type Policy struct {
	Mode         string
	Requirements []RequirementMode
	Settings     []string
	HeaderOnly   bool
}

// RequirementMode overrides the mode for one dependency.
type RequirementMode struct {
	Dependency string
	Mode       string
}

// Graph is the resolver's output for one node, in document order. Ordering
// invariants (settings in declaration order, option groups by dependency
// position) are applied by the evaluator, not here.
type Graph struct {
	Reference  ident.Ref
	Settings   []SettingValue
	Options    []OptionValue
	DepOptions []DependencyOptions
	Edges      []Edge
	RecipeHash string
	Env        []EnvVar
}

// SettingValue is one resolved setting, possibly explicitly undefined.
type SettingValue struct {
	Key   string
	Value ident.Value
}

// OptionValue is one resolved option value.
type OptionValue struct {
	Name  string
	Value ident.Value
}

// DependencyOptions carries the resolved option values of one dependency.
type DependencyOptions struct {
	Dependency string
	Options    []OptionValue
}

// Edge is one resolved dependency: the built binary it resolved to and
// whether the evaluated recipe requires it directly.
type Edge struct {
	ident.PackageRef
	Direct bool
}

// EnvVar is one captured environment variable.
type EnvVar struct {
	Name  string
	Value string
}
