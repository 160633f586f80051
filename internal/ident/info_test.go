package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func infoFromSettings(pairs ...string) *PackageInfo {
	return NewPackageInfo(buildSettings(pairs...), NewOptions())
}

func TestNewPackageInfoSeedsBothViews(t *testing.T) {
	settings := buildSettings("os", "Linux", "arch", "x86_64")
	options := NewOptions()
	options.Set("shared", DefinedValue("False"))
	options.SetPackage("liba", "shared", DefinedValue("True"))

	info := NewPackageInfo(settings, options)

	assert.Equal(t, settings.Dumps(), info.Settings().Dumps())
	assert.Equal(t, settings.Dumps(), info.FullSettings().Dumps())
	assert.Equal(t, "shared=False", info.Options().Dumps(), "collapsed options keep own values only")
	assert.Equal(t, "shared=False\nliba:shared=True", info.FullOptions().Dumps())
}

func TestPackageInfoCollapsedViewIsDetached(t *testing.T) {
	info := infoFromSettings("os", "Linux")

	info.Settings().Set("os", DefinedValue("Windows"))

	assert.Equal(t, "os=Linux", info.FullSettings().Dumps())
}

func TestAddRequirementFillsBothViews(t *testing.T) {
	info := infoFromSettings("os", "Linux")

	entry, err := info.AddRequirement(testEdge(t, "liba/1.2.3:pkgid1"), false)
	require.NoError(t, err)
	entry.SemverMode()

	assert.Equal(t, "liba/1.Y.Z", info.Requires().Dumps())
	require.Len(t, info.FullRequires(), 1)
	assert.Equal(t, "liba/1.2.3:pkgid1", info.FullRequires()[0].String())

	_, err = info.AddRequirement(testEdge(t, "liba/9.9.9:other"), false)
	assert.Error(t, err, "one contribution per dependency name")
}

func TestVSToolsetCompatibleFoldsDefaultToolset(t *testing.T) {
	explicit := infoFromSettings("compiler", "Visual Studio", "compiler.version", "15", "compiler.toolset", "v140")
	plain := infoFromSettings("compiler", "Visual Studio", "compiler.version", "14")

	explicit.VSToolsetCompatible()
	plain.VSToolsetCompatible()

	assert.Equal(t, "compiler=Visual Studio\ncompiler.version=14", explicit.Settings().Dumps())
	assert.Equal(t, plain.PackageID(), explicit.PackageID(),
		"v140 under VS 15 is the same binary as plain VS 14")
}

func TestVSToolsetCompatibleTable(t *testing.T) {
	tests := []struct {
		toolset string
		version string
	}{
		{"v80", "8"},
		{"v90", "9"},
		{"v100", "10"},
		{"v110", "11"},
		{"v120", "12"},
		{"v140", "14"},
		{"v141", "15"},
		{"v142", "16"},
		{"v143", "17"},
	}
	for _, tt := range tests {
		t.Run(tt.toolset, func(t *testing.T) {
			info := infoFromSettings("compiler", "Visual Studio", "compiler.version", "15", "compiler.toolset", tt.toolset)
			info.VSToolsetCompatible()
			assert.Equal(t, tt.version, info.Settings().GetText("compiler.version"))
			assert.Equal(t, "None", info.Settings().GetText("compiler.toolset"))
		})
	}
}

func TestVSToolsetCompatiblePrunesUndefinedToolset(t *testing.T) {
	native := infoFromSettings("compiler", "Visual Studio", "compiler.version", "14", "compiler.toolset", "None")
	folded := infoFromSettings("compiler", "Visual Studio", "compiler.version", "15", "compiler.toolset", "v140")

	native.VSToolsetCompatible()
	folded.VSToolsetCompatible()

	assert.Equal(t, native.PackageID(), folded.PackageID(),
		"no toolset and the default toolset are the same binary")
}

func TestVSToolsetCompatibleLeavesUnknownToolset(t *testing.T) {
	info := infoFromSettings("compiler", "Visual Studio", "compiler.version", "15", "compiler.toolset", "v141_clang_c2")

	info.VSToolsetCompatible()

	assert.Equal(t, "15", info.Settings().GetText("compiler.version"))
	assert.Equal(t, "v141_clang_c2", info.Settings().GetText("compiler.toolset"))
}

func TestVSToolsetCompatibleIgnoresOtherCompilers(t *testing.T) {
	info := infoFromSettings("compiler", "gcc", "compiler.version", "7.2")

	info.VSToolsetCompatible()

	assert.Equal(t, "compiler=gcc\ncompiler.version=7.2", info.Settings().Dumps())
}

func TestVSToolsetIncompatibleRestores(t *testing.T) {
	info := infoFromSettings("compiler", "Visual Studio", "compiler.version", "15", "compiler.toolset", "v140")

	info.VSToolsetCompatible()
	info.VSToolsetIncompatible()

	assert.Equal(t, "compiler=Visual Studio\ncompiler.version=15\ncompiler.toolset=v140",
		info.Settings().Dumps())
}

func TestDiscardBuildSettings(t *testing.T) {
	info := infoFromSettings("os", "Linux", "os_build", "Linux", "arch", "x86_64", "arch_build", "x86_64")

	info.DiscardBuildSettings()

	assert.Equal(t, "os=Linux\narch=x86_64", info.Settings().Dumps())
}

func TestDiscardBuildSettingsKeepsLoneBuildOS(t *testing.T) {
	// Installer recipes configure os_build without os. That lone value is the
	// whole identity and must stay.
	info := infoFromSettings("os_build", "Windows", "arch_build", "x86")

	info.DiscardBuildSettings()

	assert.Equal(t, "os_build=Windows\narch_build=x86", info.Settings().Dumps())
}

func TestIncludeBuildSettingsRestores(t *testing.T) {
	info := infoFromSettings("os", "Linux", "os_build", "Linux")

	info.DiscardBuildSettings()
	info.IncludeBuildSettings()

	assert.Equal(t, "os=Linux\nos_build=Linux", info.Settings().Dumps())
}

func TestDefaultStdMatchingFoldsCompilerDefault(t *testing.T) {
	requested := infoFromSettings("compiler", "gcc", "compiler.version", "7.2", "compiler.cppstd", "gnu14")
	unset := infoFromSettings("compiler", "gcc", "compiler.version", "7.2", "compiler.cppstd", "None")

	requested.DefaultStdMatching()
	unset.DefaultStdMatching()

	assert.Equal(t, "None", requested.Settings().GetText("compiler.cppstd"))
	assert.Equal(t, requested.PackageID(), unset.PackageID(),
		"requesting the release default spells the same binary as not requesting")
}

func TestDefaultStdMatchingKeepsNonDefault(t *testing.T) {
	info := infoFromSettings("compiler", "gcc", "compiler.version", "7.2", "compiler.cppstd", "gnu98")

	info.DefaultStdMatching()

	assert.Equal(t, "gnu98", info.Settings().GetText("compiler.cppstd"))
}

func TestDefaultStdMatchingCoversLegacyTopLevel(t *testing.T) {
	info := infoFromSettings("compiler", "gcc", "compiler.version", "7.2", "cppstd", "gnu14")

	info.DefaultStdMatching()

	assert.Equal(t, "None", info.Settings().GetText("cppstd"))
}

func TestDefaultStdMatchingSkipsMsvc(t *testing.T) {
	info := infoFromSettings("compiler", "msvc", "compiler.version", "193", "compiler.cppstd", "14")

	info.DefaultStdMatching()

	assert.Equal(t, "14", info.Settings().GetText("compiler.cppstd"))
}

func TestDefaultStdMatchingNeedsCompilerVersion(t *testing.T) {
	info := infoFromSettings("compiler", "gcc", "compiler.cppstd", "gnu14")

	info.DefaultStdMatching()

	assert.Equal(t, "gnu14", info.Settings().GetText("compiler.cppstd"))
}

func TestDefaultStdNonMatchingRestores(t *testing.T) {
	info := infoFromSettings("compiler", "gcc", "compiler.version", "7.2", "compiler.cppstd", "gnu14")

	info.DefaultStdMatching()
	info.DefaultStdNonMatching()

	assert.Equal(t, "gnu14", info.Settings().GetText("compiler.cppstd"))
}

func TestCppstdDefaultTable(t *testing.T) {
	tests := []struct {
		compiler string
		version  string
		want     string
		covered  bool
	}{
		{"gcc", "5.4", "gnu98", true},
		{"gcc", "6", "gnu14", true},
		{"gcc", "7.2", "gnu14", true},
		{"gcc", "11", "gnu17", true},
		{"clang", "5", "gnu98", true},
		{"clang", "12", "gnu14", true},
		{"clang", "16", "gnu17", true},
		{"apple-clang", "12.0", "gnu98", true},
		{"Visual Studio", "15", "14", true},
		{"Visual Studio", "12", "", false},
		{"mcst-lcc", "1.23", "gnu98", true},
		{"mcst-lcc", "1.24", "gnu14", true},
		{"intel", "19", "", false},
		{"gcc", "master", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.compiler+"-"+tt.version, func(t *testing.T) {
			got, ok := cppstdDefault(tt.compiler, tt.version)
			assert.Equal(t, tt.covered, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderOnlyClearsCollapsedViews(t *testing.T) {
	options := NewOptions()
	options.Set("shared", DefinedValue("False"))
	info := NewPackageInfo(buildSettings("os", "Linux"), options)
	entry, err := info.AddRequirement(testEdge(t, "liba/1.2.3:pkgid1"), false)
	require.NoError(t, err)
	entry.FullVersionMode()

	info.HeaderOnly()

	assert.Equal(t, "", info.Settings().Dumps())
	assert.Equal(t, "", info.Options().Dumps())
	assert.Equal(t, "", info.Requires().Dumps())
	assert.Equal(t, "os=Linux", info.FullSettings().Dumps(), "the full view survives")
	assert.Len(t, info.FullRequires(), 1)
}

func TestPackageInfoCopyIsIndependent(t *testing.T) {
	info := infoFromSettings("os", "Linux")
	_, err := info.AddRequirement(testEdge(t, "liba/1.2.3:pkgid1"), false)
	require.NoError(t, err)
	info.SetRecipeHash("hash1")
	info.Env().Set("PATH", "/usr/bin")

	dup := info.Copy()
	dup.Settings().Set("os", DefinedValue("Windows"))
	dup.SetRecipeHash("hash2")
	entry, ok := dup.Requires().Get("liba")
	require.True(t, ok)
	entry.SemverMode()

	assert.Equal(t, "os=Linux", info.Settings().Dumps())
	assert.Equal(t, "hash1", info.RecipeHash())
	assert.Equal(t, "", info.Requires().Dumps())
	assert.Equal(t, "liba/1.Y.Z", dup.Requires().Dumps())
}
