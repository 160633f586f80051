package eval

import (
	"fmt"

	"github.com/roach88/pkgid/internal/ident"
)

// Transform is one settings-level policy operation. Transforms rewrite the
// collapsed settings against the full settings; they never touch
// requirements. The first of each pair is applied by default, the second
// restores the resolved values for recipes that opt out.
type Transform string

const (
	// TransformVSToolsetCompatible folds a standard Visual Studio toolset into
	// the compiler version it ships with. Applied by default.
	TransformVSToolsetCompatible Transform = "vs_toolset_compatible"

	// TransformVSToolsetIncompatible keeps every toolset/version pair a
	// distinct identifier.
	TransformVSToolsetIncompatible Transform = "vs_toolset_incompatible"

	// TransformDiscardBuildSettings prunes os_build/arch_build when the host
	// counterpart is defined. Applied by default.
	TransformDiscardBuildSettings Transform = "discard_build_settings"

	// TransformIncludeBuildSettings restores os_build/arch_build, making the
	// identifier sensitive to the build platform.
	TransformIncludeBuildSettings Transform = "include_build_settings"

	// TransformDefaultStdMatching folds an explicit language standard that
	// equals the compiler's default to undefined. Applied by default.
	TransformDefaultStdMatching Transform = "default_std_matching"

	// TransformDefaultStdNonMatching keeps the explicit language standard a
	// distinct identifier.
	TransformDefaultStdNonMatching Transform = "default_std_non_matching"
)

// transformOrder is the default application order and the listing order of
// the modes command.
var transformOrder = []Transform{
	TransformVSToolsetCompatible,
	TransformVSToolsetIncompatible,
	TransformDiscardBuildSettings,
	TransformIncludeBuildSettings,
	TransformDefaultStdMatching,
	TransformDefaultStdNonMatching,
}

var transformDescriptions = map[Transform]string{
	TransformVSToolsetCompatible:   "fold a standard VS toolset into its compiler version (default)",
	TransformVSToolsetIncompatible: "keep every toolset/version pair distinct",
	TransformDiscardBuildSettings:  "prune *_build settings when the host setting is defined (default)",
	TransformIncludeBuildSettings:  "keep os_build/arch_build in the identifier",
	TransformDefaultStdMatching:    "fold a language standard equal to the compiler default (default)",
	TransformDefaultStdNonMatching: "keep an explicit language standard distinct",
}

// Transforms returns every settings transform in default application order.
func Transforms() []Transform {
	return append([]Transform(nil), transformOrder...)
}

// Describe returns the one-line description of a transform.
func (t Transform) Describe() string {
	return transformDescriptions[t]
}

// ParseTransform resolves a transform name from a recipe policy block.
func ParseTransform(name string) (Transform, error) {
	t := Transform(name)
	if _, ok := transformDescriptions[t]; !ok {
		return "", &Error{Code: CodeUnknownTransform, Message: fmt.Sprintf("unknown settings transform %q", name)}
	}
	return t, nil
}

func (t Transform) apply(info *ident.PackageInfo) {
	switch t {
	case TransformVSToolsetCompatible:
		info.VSToolsetCompatible()
	case TransformVSToolsetIncompatible:
		info.VSToolsetIncompatible()
	case TransformDiscardBuildSettings:
		info.DiscardBuildSettings()
	case TransformIncludeBuildSettings:
		info.IncludeBuildSettings()
	case TransformDefaultStdMatching:
		info.DefaultStdMatching()
	case TransformDefaultStdNonMatching:
		info.DefaultStdNonMatching()
	}
}

// applyDefaultTransforms runs the three default settings policies in their
// fixed order. Recipe-selected transforms run afterwards and may restore
// anything these folded away.
func applyDefaultTransforms(info *ident.PackageInfo) {
	info.VSToolsetCompatible()
	info.DiscardBuildSettings()
	info.DefaultStdMatching()
}
