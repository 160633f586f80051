package ident

import (
	"github.com/Masterminds/semver/v3"
)

// PackageInfo is the fingerprint state for one evaluated node. It keeps two
// views of everything: the full view exactly as the resolver produced it, and
// the collapsed view that policy hooks rewrite and the digest is computed
// from. The full view is never mutated after construction.
type PackageInfo struct {
	settings *Settings
	options  *Options
	requires *RequirementsInfo

	fullSettings *Settings
	fullOptions  *Options
	fullRequires []PackageRef

	recipeHash string
	env        *EnvValues
}

// NewPackageInfo seeds the state from the resolved configuration. The
// collapsed settings start as a copy of the full ones; the collapsed options
// keep the recipe's own values only, since dependency option values reach the
// fingerprint through the dependency's package ID instead.
func NewPackageInfo(settings *Settings, options *Options) *PackageInfo {
	return &PackageInfo{
		settings:     settings.Copy(),
		options:      options.OwnOnly(),
		requires:     NewRequirementsInfo(),
		fullSettings: settings.Copy(),
		fullOptions:  options.Copy(),
		env:          NewEnvValues(),
	}
}

// Settings returns the collapsed settings bag.
func (pi *PackageInfo) Settings() *Settings {
	return pi.settings
}

// Options returns the collapsed options bag.
func (pi *PackageInfo) Options() *Options {
	return pi.options
}

// Requires returns the requirement entries.
func (pi *PackageInfo) Requires() *RequirementsInfo {
	return pi.requires
}

// FullSettings returns the resolved settings as seeded.
func (pi *PackageInfo) FullSettings() *Settings {
	return pi.fullSettings
}

// FullOptions returns the resolved options as seeded, dependency groups
// included.
func (pi *PackageInfo) FullOptions() *Options {
	return pi.fullOptions
}

// FullRequires returns the resolved dependency identities in the order they
// were added.
func (pi *PackageInfo) FullRequires() []PackageRef {
	return pi.fullRequires
}

// Env returns the captured environment bag.
func (pi *PackageInfo) Env() *EnvValues {
	return pi.env
}

// RecipeHash returns the recipe content hash, empty until set.
func (pi *PackageInfo) RecipeHash() string {
	return pi.recipeHash
}

// SetRecipeHash records the recipe content hash.
func (pi *PackageInfo) SetRecipeHash(hash string) {
	pi.recipeHash = hash
}

// AddRequirement records one resolved dependency edge, in both the full list
// and the mode-collapsed entries.
func (pi *PackageInfo) AddRequirement(full PackageRef, indirect bool) (*RequirementInfo, error) {
	entry, err := pi.requires.Add(full, indirect)
	if err != nil {
		return nil, err
	}
	pi.fullRequires = append(pi.fullRequires, full)
	return entry, nil
}

// Copy returns an independent copy of both views.
func (pi *PackageInfo) Copy() *PackageInfo {
	return &PackageInfo{
		settings:     pi.settings.Copy(),
		options:      pi.options.Copy(),
		requires:     pi.requires.Copy(),
		fullSettings: pi.fullSettings.Copy(),
		fullOptions:  pi.fullOptions.Copy(),
		fullRequires: append([]PackageRef(nil), pi.fullRequires...),
		recipeHash:   pi.recipeHash,
		env:          pi.env.Copy(),
	}
}

// HeaderOnly drops every collapsed contribution, for recipes whose artifact
// is identical across configurations and dependency versions.
func (pi *PackageInfo) HeaderOnly() {
	pi.settings = NewSettings()
	pi.options = NewOptions()
	pi.requires.Clear()
}

// vsToolsetVersions maps each Visual Studio toolset to the compiler version
// that ships it as the default. Toolsets outside this table, like the clang
// ones, identify a distinct binary and are left alone.
var vsToolsetVersions = map[string]string{
	"v80":  "8",
	"v90":  "9",
	"v100": "10",
	"v110": "11",
	"v120": "12",
	"v140": "14",
	"v141": "15",
	"v142": "16",
	"v143": "17",
}

// VSToolsetCompatible folds an explicit default toolset into the matching
// compiler version, so compiler.version=15 with toolset v140 produces the
// same binary identity as plain compiler.version=14. An undefined toolset is
// pruned outright: "no toolset" and "the default toolset" are the same
// binary, and both must render the same canonical text.
func (pi *PackageInfo) VSToolsetCompatible() {
	if pi.fullSettings.GetText("compiler") != "Visual Studio" {
		return
	}
	toolset := pi.fullSettings.GetText("compiler.toolset")
	if toolset == undefinedText {
		pi.settings.RemoveSubtree("compiler.toolset")
		return
	}
	version, ok := vsToolsetVersions[toolset]
	if !ok {
		return
	}
	pi.settings.Set("compiler.version", DefinedValue(version))
	pi.settings.RemoveSubtree("compiler.toolset")
}

// VSToolsetIncompatible restores the resolved compiler version and toolset,
// keeping every toolset choice a distinct binary.
func (pi *PackageInfo) VSToolsetIncompatible() {
	if pi.fullSettings.GetText("compiler") != "Visual Studio" {
		return
	}
	if v, ok := pi.fullSettings.Get("compiler.version"); ok {
		pi.settings.Set("compiler.version", v)
	}
	if v, ok := pi.fullSettings.Get("compiler.toolset"); ok {
		pi.settings.Set("compiler.toolset", v)
	}
}

// DiscardBuildSettings prunes os_build and arch_build when the corresponding
// host setting is also defined. A recipe configured with os_build alone, like
// an installer tool, keeps it.
func (pi *PackageInfo) DiscardBuildSettings() {
	if pi.fullSettings.Defined("os") && pi.fullSettings.Defined("os_build") {
		pi.settings.RemoveSubtree("os_build")
	}
	if pi.fullSettings.Defined("arch") && pi.fullSettings.Defined("arch_build") {
		pi.settings.RemoveSubtree("arch_build")
	}
}

// IncludeBuildSettings restores os_build and arch_build from the resolved
// configuration.
func (pi *PackageInfo) IncludeBuildSettings() {
	if v, ok := pi.fullSettings.Get("os_build"); ok {
		pi.settings.Set("os_build", v)
	}
	if v, ok := pi.fullSettings.Get("arch_build"); ok {
		pi.settings.Set("arch_build", v)
	}
}

// DefaultStdMatching folds an explicitly requested C++ standard to undefined
// when it matches what the compiler release would use anyway, so both
// spellings of the same build share one identity. msvc carries the standard
// in its own model and is left alone.
func (pi *PackageInfo) DefaultStdMatching() {
	compiler := pi.fullSettings.GetText("compiler")
	if compiler == "msvc" {
		return
	}
	if !pi.fullSettings.Defined("compiler") || !pi.fullSettings.Defined("compiler.version") {
		return
	}
	def, ok := cppstdDefault(compiler, pi.fullSettings.GetText("compiler.version"))
	if !ok {
		return
	}
	if pi.fullSettings.GetText("cppstd") == def {
		pi.settings.Unset("cppstd")
	}
	if pi.fullSettings.GetText("compiler.cppstd") == def {
		pi.settings.Unset("compiler.cppstd")
	}
}

// DefaultStdNonMatching restores the requested C++ standard from the
// resolved configuration, keeping the explicit spelling a distinct identity.
func (pi *PackageInfo) DefaultStdNonMatching() {
	if pi.fullSettings.Defined("cppstd") {
		if v, ok := pi.fullSettings.Get("cppstd"); ok {
			pi.settings.Set("cppstd", v)
		}
	}
	if pi.fullSettings.Defined("compiler.cppstd") {
		if v, ok := pi.fullSettings.Get("compiler.cppstd"); ok {
			pi.settings.Set("compiler.cppstd", v)
		}
	}
}

// Compiler releases where the shipped default -std changed.
var (
	gccStd17Since   = semver.MustParse("11")
	clangStd17Since = semver.MustParse("16")
	gnuStd14Since   = semver.MustParse("6")
	vsStd14Since    = semver.MustParse("14")
	lccStd14Since   = semver.MustParse("1.24")
)

// cppstdDefault reports the C++ standard a compiler release uses when none is
// requested. The second return is false when the compiler or version is not
// covered, in which case no folding happens.
func cppstdDefault(compiler, version string) (string, bool) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", false
	}
	switch compiler {
	case "gcc":
		if !v.LessThan(gccStd17Since) {
			return "gnu17", true
		}
		if v.LessThan(gnuStd14Since) {
			return "gnu98", true
		}
		return "gnu14", true
	case "clang":
		if !v.LessThan(clangStd17Since) {
			return "gnu17", true
		}
		if v.LessThan(gnuStd14Since) {
			return "gnu98", true
		}
		return "gnu14", true
	case "apple-clang":
		return "gnu98", true
	case "Visual Studio":
		if !v.LessThan(vsStd14Since) {
			return "14", true
		}
		return "", false
	case "mcst-lcc":
		if !v.LessThan(lccStd14Since) {
			return "gnu14", true
		}
		return "gnu98", true
	}
	return "", false
}
