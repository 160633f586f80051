package eval

import (
	"fmt"

	"github.com/roach88/pkgid/internal/ident"
)

// Mode is one per-dependency compatibility policy. The set is closed:
// ParseMode rejects anything outside this list, and a recipe cannot extend
// it. Sensitivity grows monotonically down the declaration order, each mode
// contributing a superset of the previous one.
type Mode string

const (
	// ModeUnrelated contributes nothing. No change in the dependency's
	// subgraph ever forces a rebuild of the parent.
	ModeUnrelated Mode = "unrelated_mode"

	// ModeSemver tracks the major version only, keeping 0.x versions verbatim.
	ModeSemver Mode = "semver_mode"

	// ModeSemverDirect applies ModeSemver to direct edges and ModeUnrelated to
	// transitive ones. The process default.
	ModeSemverDirect Mode = "semver_direct_mode"

	// ModeMajor tracks the major version with no 0.x exception.
	ModeMajor Mode = "major_mode"

	// ModeMinor tracks major and minor.
	ModeMinor Mode = "minor_mode"

	// ModePatch tracks the numeric version zero-filled to three components.
	ModePatch Mode = "patch_mode"

	// ModeFullVersion tracks the version verbatim.
	ModeFullVersion Mode = "full_version_mode"

	// ModeFullRecipe adds user/channel sensitivity.
	ModeFullRecipe Mode = "full_recipe_mode"

	// ModeFullPackage adds the dependency's resolved package ID, so its
	// binary-level changes propagate.
	ModeFullPackage Mode = "full_package_mode"

	// ModeRecipeRevision adds the dependency's recipe revision.
	ModeRecipeRevision Mode = "recipe_revision_mode"

	// ModePackageRevision adds the dependency's package revision, the most
	// sensitive tracking. Missing revisions become a stable placeholder.
	ModePackageRevision Mode = "package_revision_mode"
)

// modeOrder lists every mode from least to most sensitive. The order is the
// documented sensitivity ladder and the listing order of the modes command.
var modeOrder = []Mode{
	ModeUnrelated,
	ModeSemver,
	ModeSemverDirect,
	ModeMajor,
	ModeMinor,
	ModePatch,
	ModeFullVersion,
	ModeFullRecipe,
	ModeFullPackage,
	ModeRecipeRevision,
	ModePackageRevision,
}

var modeDescriptions = map[Mode]string{
	ModeUnrelated:       "dependency contributes nothing",
	ModeSemver:          "major version only, 0.x versions verbatim",
	ModeSemverDirect:    "semver for direct edges, nothing for transitive ones (default)",
	ModeMajor:           "major version only",
	ModeMinor:           "major and minor version",
	ModePatch:           "numeric version, zero-filled to three components",
	ModeFullVersion:     "version verbatim",
	ModeFullRecipe:      "version plus user/channel",
	ModeFullPackage:     "full recipe plus the dependency's package ID",
	ModeRecipeRevision:  "full package plus the recipe revision",
	ModePackageRevision: "recipe revision plus the package revision",
}

// Modes returns every mode from least to most sensitive.
func Modes() []Mode {
	return append([]Mode(nil), modeOrder...)
}

// Describe returns the one-line description of a mode.
func (m Mode) Describe() string {
	return modeDescriptions[m]
}

// ParseMode resolves a mode name from a recipe policy block or the process
// configuration.
func ParseMode(name string) (Mode, error) {
	m := Mode(name)
	if _, ok := modeDescriptions[m]; !ok {
		return "", &Error{Code: CodeUnknownMode, Message: fmt.Sprintf("unknown requirement mode %q", name)}
	}
	return m, nil
}

// apply rewrites one requirement's collapsed contribution. The configuration
// adjusts two things: full-transitive evaluation erases the direct/indirect
// distinction, and disabled revisions degrade the revision-bearing modes to
// their non-revision analogue.
func (m Mode) apply(r *ident.RequirementInfo, cfg Config) {
	switch m {
	case ModeUnrelated:
		r.UnrelatedMode()
	case ModeSemver:
		r.SemverMode()
	case ModeSemverDirect:
		if cfg.FullTransitive {
			r.SemverMode()
			return
		}
		r.SemverDirectMode()
	case ModeMajor:
		r.MajorMode()
	case ModeMinor:
		r.MinorMode()
	case ModePatch:
		r.PatchMode()
	case ModeFullVersion:
		r.FullVersionMode()
	case ModeFullRecipe:
		r.FullRecipeMode()
	case ModeFullPackage:
		r.FullPackageMode()
	case ModeRecipeRevision:
		if !cfg.RevisionsEnabled {
			r.FullRecipeMode()
			return
		}
		r.RecipeRevisionMode()
	case ModePackageRevision:
		if !cfg.RevisionsEnabled {
			r.FullPackageMode()
			return
		}
		r.PackageRevisionMode()
	}
}
