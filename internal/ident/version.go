package ident

import "strings"

// Version is a loose major[.minor[.patch]] version string. It is not strict
// semver: any token layout is accepted, and schema extraction on a version
// whose leading component is not numeric degrades to the verbatim string
// instead of failing.
type Version string

// Full returns the version verbatim.
func (v Version) Full() string {
	return string(v)
}

// Major keeps the major component literal and replaces the rest with
// placeholder letters: "2.3.8" yields "2.Y.Z".
func (v Version) Major() string {
	fields, ok := v.core()
	if !ok {
		return string(v)
	}
	return fields[0] + ".Y.Z"
}

// Minor keeps major and minor literal with a patch placeholder: "2.3.8"
// yields "2.3.Z". A missing minor component fills as 0.
func (v Version) Minor() string {
	fields, ok := v.core()
	if !ok {
		return string(v)
	}
	return fields[0] + "." + component(fields, 1) + ".Z"
}

// Patch keeps the first three components, zero-filling missing ones and
// truncating extras: "2.3" yields "2.3.0" and "1.2.3.4" yields "1.2.3".
func (v Version) Patch() string {
	fields, ok := v.core()
	if !ok {
		return string(v)
	}
	return fields[0] + "." + component(fields, 1) + "." + component(fields, 2)
}

// Stable is Major with a zero-major exception: a 0.x line makes no
// compatibility promise, so the full string is kept verbatim.
func (v Version) Stable() string {
	fields, ok := v.core()
	if !ok {
		return string(v)
	}
	if fields[0] == "0" {
		return string(v)
	}
	return fields[0] + ".Y.Z"
}

// core returns the dotted components with any "+build" and "-prerelease"
// parts stripped. ok is false when the leading component is not numeric, in
// which case schema extraction degrades to verbatim passthrough.
func (v Version) core() ([]string, bool) {
	base := string(v)
	if i := strings.IndexByte(base, '+'); i >= 0 {
		base = base[:i]
	}
	if i := strings.IndexByte(base, '-'); i >= 0 {
		base = base[:i]
	}
	fields := strings.Split(base, ".")
	if !isNumeric(fields[0]) {
		return nil, false
	}
	return fields, true
}

func component(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return "0"
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
