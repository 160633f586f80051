package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeBuilder(t *testing.T) {
	rec := NewRecipe("app", "1.0").
		UserChannel("user", "testing").
		Settings("os", "compiler", "compiler.version").
		Option("shared", "False").
		Option("fPIC", "None").
		Requires("hello/1.2.0@lasote/stable", "zlib/1.0").
		Mode("full_recipe_mode").
		RequirementMode("zlib", "unrelated_mode").
		Transforms("include_build_settings").
		Build()

	assert.Equal(t, "app/1.0@user/testing", rec.Ref().String())
	assert.Equal(t, []string{"os", "compiler", "compiler.version"}, rec.Settings)

	require.Len(t, rec.Options, 2)
	assert.Equal(t, "False", rec.Options[0].Default.String())
	assert.False(t, rec.Options[1].Default.Defined(), `"None" declares an undefined default`)

	require.Len(t, rec.Requires, 2)
	assert.Equal(t, "hello/1.2.0@lasote/stable", rec.Requires[0].String())

	assert.Equal(t, "full_recipe_mode", rec.Policy.Mode)
	require.Len(t, rec.Policy.Requirements, 1)
	assert.Equal(t, "zlib", rec.Policy.Requirements[0].Dependency)
	assert.Equal(t, []string{"include_build_settings"}, rec.Policy.Settings)
	assert.False(t, rec.Policy.HeaderOnly)
}

func TestRecipeBuilderHeaderOnly(t *testing.T) {
	rec := NewRecipe("hdr", "0.1").HeaderOnly().Build()
	assert.True(t, rec.Policy.HeaderOnly)
}

func TestGraphBuilder(t *testing.T) {
	g := NewGraph("app/1.0@user/testing#rrev0").
		Setting("os", "Linux").
		Setting("os_build", "None").
		Option("shared", "False").
		DepOption("hello", "static", "True").
		DepOption("hello", "fPIC", "True").
		Edge("hello/1.2.0@lasote/stable#rrev1:pid1#prev1", true).
		Edge("zlib/1.0#rrev2:pid2", false).
		RecipeHash("rhash").
		Env("CC", "gcc").
		Build()

	assert.Equal(t, "app/1.0@user/testing#rrev0", g.Reference.String())

	require.Len(t, g.Settings, 2)
	assert.True(t, g.Settings[0].Value.Defined())
	assert.False(t, g.Settings[1].Value.Defined())

	require.Len(t, g.DepOptions, 1, "options of one dependency share a group")
	assert.Equal(t, "hello", g.DepOptions[0].Dependency)
	assert.Len(t, g.DepOptions[0].Options, 2)

	require.Len(t, g.Edges, 2)
	assert.True(t, g.Edges[0].Direct)
	assert.Equal(t, "pid2", g.Edges[1].PackageID)
	assert.Empty(t, g.Edges[1].Revision, "editable dependencies carry no package revision")

	assert.Equal(t, "rhash", g.RecipeHash)
	require.Len(t, g.Env, 1)
	assert.Equal(t, "CC", g.Env[0].Name)
}

func TestBuildersCopyState(t *testing.T) {
	b := NewRecipe("app", "1.0")
	first := b.Build()
	b.Settings("os")
	second := b.Build()

	assert.Empty(t, first.Settings, "built documents do not alias the builder")
	assert.Equal(t, []string{"os"}, second.Settings)
}
