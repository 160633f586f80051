package ident

import (
	"fmt"
	"strings"
)

// Ref identifies one recipe: name/version, an optional @user/channel pair,
// and an optional recipe revision after '#'.
type Ref struct {
	Name     string
	Version  Version
	User     string
	Channel  string
	Revision string
}

// NewRef builds a reference without user, channel or revision.
func NewRef(name string, version Version) Ref {
	return Ref{Name: name, Version: version}
}

// String renders name/version[@user/channel][#revision].
func (r Ref) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteByte('/')
	b.WriteString(string(r.Version))
	if r.User != "" || r.Channel != "" {
		b.WriteByte('@')
		b.WriteString(r.User)
		b.WriteByte('/')
		b.WriteString(r.Channel)
	}
	if r.Revision != "" {
		b.WriteByte('#')
		b.WriteString(r.Revision)
	}
	return b.String()
}

// ParseRef parses name/version[@user/channel][#revision].
func ParseRef(s string) (Ref, error) {
	var ref Ref
	rest := s
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		ref.Revision = rest[i+1:]
		rest = rest[:i]
		if ref.Revision == "" {
			return Ref{}, fmt.Errorf("reference %q: empty revision after '#'", s)
		}
	}
	if i := strings.IndexByte(rest, '@'); i >= 0 {
		userChannel := rest[i+1:]
		rest = rest[:i]
		j := strings.IndexByte(userChannel, '/')
		if j < 0 {
			return Ref{}, fmt.Errorf("reference %q: expected user/channel after '@'", s)
		}
		ref.User = userChannel[:j]
		ref.Channel = userChannel[j+1:]
	}
	i := strings.IndexByte(rest, '/')
	if i <= 0 || i == len(rest)-1 {
		return Ref{}, fmt.Errorf("reference %q: expected name/version", s)
	}
	ref.Name = rest[:i]
	ref.Version = Version(rest[i+1:])
	return ref, nil
}

// MustParseRef parses a reference or panics. For fixtures and tests.
func MustParseRef(s string) Ref {
	ref, err := ParseRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

// PackageRef identifies one built binary: a recipe reference, the package ID
// it was built under, and an optional package revision after a second '#'.
type PackageRef struct {
	Ref       Ref
	PackageID string
	Revision  string
}

// String renders ref:package_id[#revision].
func (p PackageRef) String() string {
	var b strings.Builder
	b.WriteString(p.Ref.String())
	b.WriteByte(':')
	b.WriteString(p.PackageID)
	if p.Revision != "" {
		b.WriteByte('#')
		b.WriteString(p.Revision)
	}
	return b.String()
}

// ParsePackageRef parses ref:package_id[#revision]. The ':' separates the
// recipe reference (which may itself carry a '#' recipe revision) from the
// package ID.
func ParsePackageRef(s string) (PackageRef, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return PackageRef{}, fmt.Errorf("packaged reference %q: missing ':package_id'", s)
	}
	ref, err := ParseRef(s[:i])
	if err != nil {
		return PackageRef{}, err
	}
	pkg := PackageRef{Ref: ref}
	rest := s[i+1:]
	if j := strings.IndexByte(rest, '#'); j >= 0 {
		pkg.Revision = rest[j+1:]
		rest = rest[:j]
		if pkg.Revision == "" {
			return PackageRef{}, fmt.Errorf("packaged reference %q: empty package revision after '#'", s)
		}
	}
	if rest == "" {
		return PackageRef{}, fmt.Errorf("packaged reference %q: empty package id", s)
	}
	pkg.PackageID = rest
	return pkg, nil
}

// MustParsePackageRef parses a packaged reference or panics. For fixtures and
// tests.
func MustParsePackageRef(s string) PackageRef {
	pkg, err := ParsePackageRef(s)
	if err != nil {
		panic(err)
	}
	return pkg
}
