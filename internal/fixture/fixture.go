package fixture

import (
	"github.com/roach88/pkgid/internal/ident"
	"github.com/roach88/pkgid/internal/recipe"
)

// RecipeBuilder assembles a recipe document.
type RecipeBuilder struct {
	rec recipe.Recipe
}

// NewRecipe starts a recipe named name/version.
func NewRecipe(name, version string) *RecipeBuilder {
	return &RecipeBuilder{rec: recipe.Recipe{Name: name, Version: version}}
}

// UserChannel sets the recipe's user and channel.
func (b *RecipeBuilder) UserChannel(user, channel string) *RecipeBuilder {
	b.rec.User = user
	b.rec.Channel = channel
	return b
}

// Settings declares the applicable setting keys, in order.
func (b *RecipeBuilder) Settings(keys ...string) *RecipeBuilder {
	b.rec.Settings = append(b.rec.Settings, keys...)
	return b
}

// Option declares one option with its default. The literal "None" declares
// an undefined default.
func (b *RecipeBuilder) Option(name, def string) *RecipeBuilder {
	b.rec.Options = append(b.rec.Options, recipe.OptionDefault{
		Name:    name,
		Default: ident.ParseValue(def),
	})
	return b
}

// Requires declares direct requirement references, e.g. "hello/1.2.0@u/c".
func (b *RecipeBuilder) Requires(refs ...string) *RecipeBuilder {
	for _, ref := range refs {
		b.rec.Requires = append(b.rec.Requires, ident.MustParseRef(ref))
	}
	return b
}

// Mode sets the policy block's global mode.
func (b *RecipeBuilder) Mode(mode string) *RecipeBuilder {
	b.rec.Policy.Mode = mode
	return b
}

// RequirementMode adds a per-dependency mode override.
func (b *RecipeBuilder) RequirementMode(dep, mode string) *RecipeBuilder {
	b.rec.Policy.Requirements = append(b.rec.Policy.Requirements, recipe.RequirementMode{
		Dependency: dep,
		Mode:       mode,
	})
	return b
}

// Transforms adds settings transforms to the policy block.
func (b *RecipeBuilder) Transforms(names ...string) *RecipeBuilder {
	b.rec.Policy.Settings = append(b.rec.Policy.Settings, names...)
	return b
}

// HeaderOnly marks the recipe's artifact as configuration-independent.
func (b *RecipeBuilder) HeaderOnly() *RecipeBuilder {
	b.rec.Policy.HeaderOnly = true
	return b
}

// Build returns the recipe document.
func (b *RecipeBuilder) Build() *recipe.Recipe {
	rec := b.rec
	return &rec
}

// GraphBuilder assembles the resolver's graph document for one node.
type GraphBuilder struct {
	g recipe.Graph
}

// NewGraph starts a graph document for the node ref, e.g. "consumer/0.1".
func NewGraph(ref string) *GraphBuilder {
	return &GraphBuilder{g: recipe.Graph{Reference: ident.MustParseRef(ref)}}
}

// Setting records one resolved setting. The literal "None" records an
// explicitly undefined value.
func (b *GraphBuilder) Setting(key, value string) *GraphBuilder {
	b.g.Settings = append(b.g.Settings, recipe.SettingValue{
		Key:   key,
		Value: ident.ParseValue(value),
	})
	return b
}

// Option records one resolved option value for the node itself.
func (b *GraphBuilder) Option(name, value string) *GraphBuilder {
	b.g.Options = append(b.g.Options, recipe.OptionValue{
		Name:  name,
		Value: ident.ParseValue(value),
	})
	return b
}

// DepOption records one resolved option value of a dependency.
func (b *GraphBuilder) DepOption(dep, name, value string) *GraphBuilder {
	for i := range b.g.DepOptions {
		if b.g.DepOptions[i].Dependency == dep {
			b.g.DepOptions[i].Options = append(b.g.DepOptions[i].Options, recipe.OptionValue{
				Name:  name,
				Value: ident.ParseValue(value),
			})
			return b
		}
	}
	b.g.DepOptions = append(b.g.DepOptions, recipe.DependencyOptions{
		Dependency: dep,
		Options:    []recipe.OptionValue{{Name: name, Value: ident.ParseValue(value)}},
	})
	return b
}

// Edge records one resolved dependency edge from a packaged reference like
// "hello/1.2.0@u/c#rrev:pkgid#prev".
func (b *GraphBuilder) Edge(packageRef string, direct bool) *GraphBuilder {
	b.g.Edges = append(b.g.Edges, recipe.Edge{
		PackageRef: ident.MustParsePackageRef(packageRef),
		Direct:     direct,
	})
	return b
}

// RecipeHash records the recipe content hash.
func (b *GraphBuilder) RecipeHash(hash string) *GraphBuilder {
	b.g.RecipeHash = hash
	return b
}

// Env records one captured environment variable.
func (b *GraphBuilder) Env(name, value string) *GraphBuilder {
	b.g.Env = append(b.g.Env, recipe.EnvVar{Name: name, Value: value})
	return b
}

// Build returns the graph document.
func (b *GraphBuilder) Build() *recipe.Graph {
	g := b.g
	return &g
}
