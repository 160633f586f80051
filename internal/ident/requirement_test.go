package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEdge(t *testing.T, raw string) PackageRef {
	t.Helper()
	ref, err := ParsePackageRef(raw)
	require.NoError(t, err)
	return ref
}

func TestRequirementModeLadder(t *testing.T) {
	full := testEdge(t, "liba/1.2.3@user/testing#rrev1:pkgid1#prev1")

	tests := []struct {
		name  string
		apply func(*RequirementInfo)
		want  string
	}{
		{"unrelated", (*RequirementInfo).UnrelatedMode, ""},
		{"semver", (*RequirementInfo).SemverMode, "liba/1.Y.Z"},
		{"major", (*RequirementInfo).MajorMode, "liba/1.Y.Z"},
		{"minor", (*RequirementInfo).MinorMode, "liba/1.2.Z"},
		{"patch", (*RequirementInfo).PatchMode, "liba/1.2.3"},
		{"full_version", (*RequirementInfo).FullVersionMode, "liba/1.2.3"},
		{"full_recipe", (*RequirementInfo).FullRecipeMode, "liba/1.2.3@user/testing"},
		{"full_package", (*RequirementInfo).FullPackageMode, "liba/1.2.3@user/testing:pkgid1"},
		{"recipe_revision", (*RequirementInfo).RecipeRevisionMode, "liba/1.2.3@user/testing#rrev1:pkgid1"},
		{"package_revision", (*RequirementInfo).PackageRevisionMode, "liba/1.2.3@user/testing#rrev1:pkgid1#prev1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := NewRequirementInfo(full, false)
			tt.apply(entry)
			assert.Equal(t, tt.want, entry.Dumps())
		})
	}
}

func TestRequirementSemverKeepsZeroMajorVerbatim(t *testing.T) {
	entry := NewRequirementInfo(testEdge(t, "liba/0.4.2:pkgid1"), false)

	entry.SemverMode()

	assert.Equal(t, "liba/0.4.2", entry.Dumps())
}

func TestRequirementSemverDirectCollapsesIndirect(t *testing.T) {
	direct := NewRequirementInfo(testEdge(t, "liba/1.2.3:pkgid1"), false)
	indirect := NewRequirementInfo(testEdge(t, "libb/2.0.1:pkgid2"), true)

	direct.SemverDirectMode()
	indirect.SemverDirectMode()

	assert.Equal(t, "liba/1.Y.Z", direct.Dumps())
	assert.Equal(t, "", indirect.Dumps())
}

func TestRequirementModesOverwriteEachOther(t *testing.T) {
	entry := NewRequirementInfo(testEdge(t, "liba/1.2.3@user/testing#rrev1:pkgid1"), false)

	entry.RecipeRevisionMode()
	entry.SemverMode()

	assert.Equal(t, "liba/1.Y.Z", entry.Dumps())
}

func TestRequirementWithoutUserChannelOmitsAt(t *testing.T) {
	entry := NewRequirementInfo(testEdge(t, "liba/1.2.3:pkgid1"), false)

	entry.FullRecipeMode()

	assert.Equal(t, "liba/1.2.3", entry.Dumps())
}

func TestRequirementPackageRevisionPlaceholder(t *testing.T) {
	// An editable dependency has no built binary yet, so the most sensitive
	// mode substitutes a stable placeholder instead of failing.
	entry := NewRequirementInfo(testEdge(t, "liba/1.2.3@user/testing#rrev1:pkgid1"), false)

	entry.PackageRevisionMode()

	assert.Equal(t, "liba/1.2.3@user/testing#rrev1:pkgid1#unknown", entry.Dumps())
}

func TestRequirementPackageRevisionNeedsPackageID(t *testing.T) {
	// A resolved edge can carry a package revision while its package ID is
	// empty. Rendering the revision without the ':' part would fold it into
	// the recipe revision on reload, so it is withheld.
	full := PackageRef{Ref: MustParseRef("liba/1.2.3#rrev1"), Revision: "prev1"}
	entry := NewRequirementInfo(full, false)

	entry.PackageRevisionMode()
	assert.Equal(t, "liba/1.2.3#rrev1", entry.Dumps())

	reloaded, err := parseRequirementLine(entry.Dumps())
	require.NoError(t, err)
	assert.Equal(t, "rrev1", reloaded.recipeRevision)
	assert.Empty(t, reloaded.packageRevision)
}

func TestRequirementsInfoAddAndOrder(t *testing.T) {
	ri := NewRequirementsInfo()

	_, err := ri.Add(testEdge(t, "libb/2.0.1:pkgid2"), false)
	require.NoError(t, err)
	_, err = ri.Add(testEdge(t, "liba/1.2.3:pkgid1"), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"libb", "liba"}, ri.Names())

	entry, ok := ri.Get("liba")
	require.True(t, ok)
	assert.True(t, entry.Indirect())
}

func TestRequirementsInfoRejectsDuplicate(t *testing.T) {
	ri := NewRequirementsInfo()

	_, err := ri.Add(testEdge(t, "liba/1.2.3:pkgid1"), false)
	require.NoError(t, err)
	_, err = ri.Add(testEdge(t, "liba/2.0.0:pkgid9"), false)

	assert.Error(t, err)
}

func TestRequirementsInfoRemove(t *testing.T) {
	ri := NewRequirementsInfo()
	_, err := ri.Add(testEdge(t, "liba/1.2.3:pkgid1"), false)
	require.NoError(t, err)
	_, err = ri.Add(testEdge(t, "libb/2.0.1:pkgid2"), false)
	require.NoError(t, err)

	require.NoError(t, ri.Remove("liba"))

	assert.Equal(t, []string{"libb"}, ri.Names())
	assert.Error(t, ri.Remove("liba"), "second removal targets a name that is gone")
}

func TestRequirementsInfoDumpsSkipsUnrelated(t *testing.T) {
	ri := NewRequirementsInfo()
	a, err := ri.Add(testEdge(t, "liba/1.2.3:pkgid1"), false)
	require.NoError(t, err)
	b, err := ri.Add(testEdge(t, "libb/2.0.1:pkgid2"), false)
	require.NoError(t, err)

	a.UnrelatedMode()
	b.SemverMode()

	assert.Equal(t, "libb/2.Y.Z", ri.Dumps())
}

func TestRequirementsInfoCopyIsIndependent(t *testing.T) {
	ri := NewRequirementsInfo()
	entry, err := ri.Add(testEdge(t, "liba/1.2.3:pkgid1"), false)
	require.NoError(t, err)
	entry.SemverMode()

	dup := ri.Copy()
	copied, ok := dup.Get("liba")
	require.True(t, ok)
	copied.FullVersionMode()

	assert.Equal(t, "liba/1.Y.Z", ri.Dumps())
	assert.Equal(t, "liba/1.2.3", dup.Dumps())
}
