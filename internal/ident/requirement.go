package ident

import (
	"fmt"
	"strings"
)

// UnknownRevision stands in for a package revision that has not been produced
// yet. Editable dependencies have no built binary, so revision-sensitive
// modes substitute this stable placeholder instead of failing.
const UnknownRevision = "unknown"

// RequirementInfo carries one dependency edge: the full identity the resolver
// supplied and the collapsed contribution the selected compatibility mode kept
// of it. Mode application rewrites the collapsed fields in place from the full
// identity, so a second mode call overwrites the first entirely.
type RequirementInfo struct {
	full     PackageRef
	indirect bool

	name            string
	version         string
	user            string
	channel         string
	packageID       string
	recipeRevision  string
	packageRevision string
}

// NewRequirementInfo seeds an entry from the resolver's edge. Until a mode is
// applied the collapsed contribution is empty, which is the unrelated state.
func NewRequirementInfo(full PackageRef, indirect bool) *RequirementInfo {
	return &RequirementInfo{full: full, indirect: indirect}
}

// Full returns the edge identity as resolved.
func (r *RequirementInfo) Full() PackageRef {
	return r.full
}

// Name returns the dependency name from the full identity.
func (r *RequirementInfo) Name() string {
	return r.full.Ref.Name
}

// Indirect reports whether the edge is transitive rather than declared
// directly by the evaluated recipe.
func (r *RequirementInfo) Indirect() bool {
	return r.indirect
}

// Copy returns an independent copy of the entry.
func (r *RequirementInfo) Copy() *RequirementInfo {
	dup := *r
	return &dup
}

// UnrelatedMode clears the contribution entirely. A change anywhere in the
// dependency's subgraph never forces a rebuild of the parent.
func (r *RequirementInfo) UnrelatedMode() {
	r.name = ""
	r.version = ""
	r.user = ""
	r.channel = ""
	r.packageID = ""
	r.recipeRevision = ""
	r.packageRevision = ""
}

// SemverMode tracks the major version only, keeping 0.x versions verbatim.
func (r *RequirementInfo) SemverMode() {
	r.versionOnly(r.full.Ref.Version.Stable())
}

// SemverDirectMode is the process default: direct edges get SemverMode,
// transitive edges collapse to UnrelatedMode.
func (r *RequirementInfo) SemverDirectMode() {
	if r.indirect {
		r.UnrelatedMode()
		return
	}
	r.SemverMode()
}

// MajorMode tracks the major version with no 0.x exception.
func (r *RequirementInfo) MajorMode() {
	r.versionOnly(r.full.Ref.Version.Major())
}

// MinorMode tracks major and minor.
func (r *RequirementInfo) MinorMode() {
	r.versionOnly(r.full.Ref.Version.Minor())
}

// PatchMode tracks the full numeric version, zero-filled to three components.
func (r *RequirementInfo) PatchMode() {
	r.versionOnly(r.full.Ref.Version.Patch())
}

// FullVersionMode tracks the version verbatim, still without user, channel or
// revisions.
func (r *RequirementInfo) FullVersionMode() {
	r.versionOnly(r.full.Ref.Version.Full())
}

// FullRecipeMode adds user/channel sensitivity on top of the verbatim
// version. Revisions stay excluded.
func (r *RequirementInfo) FullRecipeMode() {
	r.versionOnly(r.full.Ref.Version.Full())
	r.user = r.full.Ref.User
	r.channel = r.full.Ref.Channel
}

// FullPackageMode adds the dependency's resolved package ID, making the
// contribution sensitive to the dependency's binary-level changes.
func (r *RequirementInfo) FullPackageMode() {
	r.FullRecipeMode()
	r.packageID = r.full.PackageID
}

// RecipeRevisionMode adds the dependency's recipe revision.
func (r *RequirementInfo) RecipeRevisionMode() {
	r.FullPackageMode()
	r.recipeRevision = r.full.Ref.Revision
}

// PackageRevisionMode adds the dependency's package revision, the most
// sensitive tracking. A dependency without a built binary contributes the
// UnknownRevision placeholder.
func (r *RequirementInfo) PackageRevisionMode() {
	r.RecipeRevisionMode()
	if r.full.Revision != "" {
		r.packageRevision = r.full.Revision
	} else {
		r.packageRevision = UnknownRevision
	}
}

func (r *RequirementInfo) versionOnly(version string) {
	r.name = r.full.Ref.Name
	r.version = version
	r.user = ""
	r.channel = ""
	r.packageID = ""
	r.recipeRevision = ""
	r.packageRevision = ""
}

// Dumps renders the collapsed contribution: name/version, then @user/channel
// when either is set, then #recipe_revision, :package_id and
// #package_revision when set. An unrelated entry renders nothing.
//
// A package revision renders only behind a package ID: without the ":" part
// a second "#" segment would parse back as part of the recipe revision.
func (r *RequirementInfo) Dumps() string {
	if r.name == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.name)
	b.WriteByte('/')
	b.WriteString(r.version)
	if r.user != "" || r.channel != "" {
		b.WriteByte('@')
		b.WriteString(r.user)
		b.WriteByte('/')
		b.WriteString(r.channel)
	}
	if r.recipeRevision != "" {
		b.WriteByte('#')
		b.WriteString(r.recipeRevision)
	}
	if r.packageID != "" {
		b.WriteByte(':')
		b.WriteString(r.packageID)
		if r.packageRevision != "" {
			b.WriteByte('#')
			b.WriteString(r.packageRevision)
		}
	}
	return b.String()
}

// RequirementsInfo is the ordered collection of requirement entries for one
// evaluation, in the resolver's first-seen order. Entries are looked up by
// dependency name for per-dependency policy application.
type RequirementsInfo struct {
	entries []*RequirementInfo
	byName  map[string]*RequirementInfo
}

// NewRequirementsInfo returns an empty collection.
func NewRequirementsInfo() *RequirementsInfo {
	return &RequirementsInfo{byName: make(map[string]*RequirementInfo)}
}

// Add appends an entry for the edge and returns it. Adding a second edge for
// the same dependency name is an error in the resolver's output.
func (ri *RequirementsInfo) Add(full PackageRef, indirect bool) (*RequirementInfo, error) {
	name := full.Ref.Name
	if _, exists := ri.byName[name]; exists {
		return nil, fmt.Errorf("duplicate requirement %q", name)
	}
	entry := NewRequirementInfo(full, indirect)
	ri.entries = append(ri.entries, entry)
	ri.byName[name] = entry
	return entry, nil
}

// addLoaded appends an entry parsed from canonical text. Only the collapsed
// fields are known, so the full identity keeps just the name for lookups.
func (ri *RequirementsInfo) addLoaded(entry *RequirementInfo) error {
	if _, exists := ri.byName[entry.name]; exists {
		return fmt.Errorf("duplicate requirement %q", entry.name)
	}
	entry.full.Ref.Name = entry.name
	ri.entries = append(ri.entries, entry)
	ri.byName[entry.name] = entry
	return nil
}

// Get looks an entry up by dependency name.
func (ri *RequirementsInfo) Get(name string) (*RequirementInfo, bool) {
	entry, ok := ri.byName[name]
	return entry, ok
}

// Items returns the entries in first-seen order.
func (ri *RequirementsInfo) Items() []*RequirementInfo {
	return ri.entries
}

// Len returns the number of entries.
func (ri *RequirementsInfo) Len() int {
	return len(ri.entries)
}

// Names returns the dependency names in first-seen order.
func (ri *RequirementsInfo) Names() []string {
	names := make([]string, len(ri.entries))
	for i, entry := range ri.entries {
		names[i] = entry.Name()
	}
	return names
}

// Remove drops entries by dependency name. Unknown names are errors so a
// recipe policy cannot silently target a dependency that is not there.
func (ri *RequirementsInfo) Remove(names ...string) error {
	for _, name := range names {
		if _, ok := ri.byName[name]; !ok {
			return fmt.Errorf("requirement %q not found", name)
		}
		delete(ri.byName, name)
		for i, entry := range ri.entries {
			if entry.Name() == name {
				ri.entries = append(ri.entries[:i], ri.entries[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Clear drops every entry.
func (ri *RequirementsInfo) Clear() {
	ri.entries = nil
	ri.byName = make(map[string]*RequirementInfo)
}

// Copy returns an independent copy of the collection.
func (ri *RequirementsInfo) Copy() *RequirementsInfo {
	dup := NewRequirementsInfo()
	for _, entry := range ri.entries {
		c := entry.Copy()
		dup.entries = append(dup.entries, c)
		dup.byName[c.Name()] = c
	}
	return dup
}

// Dumps renders the non-empty contributions, one line each, first-seen order.
func (ri *RequirementsInfo) Dumps() string {
	var lines []string
	for _, entry := range ri.entries {
		if line := entry.Dumps(); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
