package recipe

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileGraph(t *testing.T, src string) (*Graph, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return ParseGraph(v.LookupPath(cue.ParsePath("graph")))
}

func TestParseGraphBasic(t *testing.T) {
	g, err := compileGraph(t, `
		graph: {
			reference: "libc/0.1@user/testing#rrevc"
			settings: {
				os:                 "Linux"
				arch:               "x86_64"
				compiler:           "gcc"
				"compiler.version": "7.2"
				"compiler.cppstd":  null
			}
			options: {
				shared: "False"
			}
			dependencyOptions: {
				libb: {shared: "True"}
			}
			requires: [
				{ref: "libb/0.1@user/testing#rrevb", packageId: "pkgidb", packageRevision: "prevb", direct: true},
				{ref: "liba/0.1@user/testing#rreva", packageId: "pkgida", direct: false},
			]
			recipeHash: "8b7a6ae1966d0d4282c92ec1fde6e45e"
			env: {
				CC: "gcc-7"
			}
		}
	`)
	require.NoError(t, err)

	assert.Equal(t, "libc/0.1@user/testing#rrevc", g.Reference.String())

	require.Len(t, g.Settings, 5)
	assert.Equal(t, "os", g.Settings[0].Key)
	assert.Equal(t, "compiler.version", g.Settings[3].Key)
	assert.Equal(t, "7.2", g.Settings[3].Value.String())
	assert.Equal(t, "compiler.cppstd", g.Settings[4].Key)
	assert.False(t, g.Settings[4].Value.Defined())

	require.Len(t, g.Options, 1)
	assert.Equal(t, "shared", g.Options[0].Name)

	require.Len(t, g.DepOptions, 1)
	assert.Equal(t, "libb", g.DepOptions[0].Dependency)
	require.Len(t, g.DepOptions[0].Options, 1)
	assert.Equal(t, "True", g.DepOptions[0].Options[0].Value.String())

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "libb/0.1@user/testing#rrevb:pkgidb#prevb", g.Edges[0].PackageRef.String())
	assert.True(t, g.Edges[0].Direct)
	assert.Equal(t, "", g.Edges[1].Revision)
	assert.False(t, g.Edges[1].Direct)

	assert.Equal(t, "8b7a6ae1966d0d4282c92ec1fde6e45e", g.RecipeHash)
	require.Len(t, g.Env, 1)
	assert.Equal(t, EnvVar{Name: "CC", Value: "gcc-7"}, g.Env[0])
}

func TestParseGraphEdgeRecipeRevisionField(t *testing.T) {
	g, err := compileGraph(t, `
		graph: {
			reference: "liba/1.0"
			requires: [
				{ref: "libb/1.0", recipeRevision: "rrevb", packageId: "pkgidb", direct: true},
				{ref: "libc/1.0#rrevc", recipeRevision: "rrevc", packageId: "pkgidc", direct: true},
			]
		}
	`)
	require.NoError(t, err)

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "rrevb", g.Edges[0].Ref.Revision)
	assert.Equal(t, "libb/1.0#rrevb", g.Edges[0].Ref.String())
	assert.Equal(t, "rrevc", g.Edges[1].Ref.Revision)
}

func TestParseGraphEdgeRecipeRevisionConflict(t *testing.T) {
	_, err := compileGraph(t, `
		graph: {
			reference: "liba/1.0"
			requires: [
				{ref: "libb/1.0#rrev1", recipeRevision: "rrev2", packageId: "pkgidb", direct: true},
			]
		}
	`)

	require.Error(t, err)
	loadErr := asLoadError(t, err)
	assert.Equal(t, ErrCodeGraphEdge, loadErr.Code)
	assert.Contains(t, err.Error(), "recipeRevision")
}

func TestParseGraphNoneLiteralIsUndefined(t *testing.T) {
	g, err := compileGraph(t, `
		graph: {
			reference: "liba/1.0"
			settings: {
				"compiler.cppstd": "None"
			}
		}
	`)
	require.NoError(t, err)

	require.Len(t, g.Settings, 1)
	assert.False(t, g.Settings[0].Value.Defined())
}

func TestParseGraphMissingReference(t *testing.T) {
	_, err := compileGraph(t, `
		graph: {
			settings: {os: "Linux"}
		}
	`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference")
}

func TestParseGraphEdgeRequiresDirect(t *testing.T) {
	_, err := compileGraph(t, `
		graph: {
			reference: "liba/1.0"
			requires: [
				{ref: "libb/1.0", packageId: "pkgidb"},
			]
		}
	`)

	require.Error(t, err)
	loadErr := asLoadError(t, err)
	assert.Equal(t, ErrCodeGraphEdge, loadErr.Code)
	assert.Contains(t, err.Error(), "direct")
}

func TestParseGraphEdgeRequiresPackageID(t *testing.T) {
	_, err := compileGraph(t, `
		graph: {
			reference: "liba/1.0"
			requires: [
				{ref: "libb/1.0", direct: true},
			]
		}
	`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "packageId")
}

func TestParseGraphNumericSettingRejected(t *testing.T) {
	_, err := compileGraph(t, `
		graph: {
			reference: "liba/1.0"
			settings: {
				"compiler.version": 11
			}
		}
	`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "strings")
}
