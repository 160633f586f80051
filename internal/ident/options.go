package ident

import (
	"fmt"
	"strings"
)

// Options holds the recipe's own option values plus one group per dependency,
// groups ordered by dependency position and rendered pkgname:option=value.
// The collapsed bag that reaches the digest carries the own options only;
// dependency option values influence the fingerprint solely through the
// dependency's package ID under the stronger requirement modes.
type Options struct {
	own    *orderedValues
	groups []*optionGroup
}

type optionGroup struct {
	pkg  string
	vals *orderedValues
}

// NewOptions returns an empty options bag.
func NewOptions() *Options {
	return &Options{own: newOrderedValues()}
}

// Set stores one of the recipe's own option values, declaring the option on
// first use.
func (o *Options) Set(name string, v Value) {
	o.own.set(name, v)
}

// SetPackage stores a dependency option value under pkg. The group is created
// at the current tail position on first use.
func (o *Options) SetPackage(pkg, name string, v Value) {
	o.group(pkg).set(name, v)
}

func (o *Options) group(pkg string) *orderedValues {
	for _, g := range o.groups {
		if g.pkg == pkg {
			return g.vals
		}
	}
	g := &optionGroup{pkg: pkg, vals: newOrderedValues()}
	o.groups = append(o.groups, g)
	return g.vals
}

// Get returns one of the recipe's own option values.
func (o *Options) Get(name string) (Value, bool) {
	return o.own.get(name)
}

// GetText renders an option value, qualified pkg:name keys reaching into
// dependency groups. Absent options render "None".
func (o *Options) GetText(name string) string {
	if pkg, opt, ok := strings.Cut(name, ":"); ok {
		for _, g := range o.groups {
			if g.pkg == pkg {
				return g.vals.getText(opt)
			}
		}
		return undefinedText
	}
	return o.own.getText(name)
}

// Packages returns the dependency group names in position order.
func (o *Options) Packages() []string {
	pkgs := make([]string, len(o.groups))
	for i, g := range o.groups {
		pkgs[i] = g.pkg
	}
	return pkgs
}

// Len returns the number of entries across the own bag and all groups.
func (o *Options) Len() int {
	n := o.own.len()
	for _, g := range o.groups {
		n += g.vals.len()
	}
	return n
}

// Copy returns an independent copy including the dependency groups.
func (o *Options) Copy() *Options {
	dup := &Options{own: o.own.copy()}
	for _, g := range o.groups {
		dup.groups = append(dup.groups, &optionGroup{pkg: g.pkg, vals: g.vals.copy()})
	}
	return dup
}

// OwnOnly returns a copy without the dependency groups. This is the collapsed
// bag: a dependency rename or option flip must not reach the fingerprint
// through the options section.
func (o *Options) OwnOnly() *Options {
	return &Options{own: o.own.copy()}
}

// Dumps renders the own options first in declaration order, then each
// dependency group by position as pkg:option=value lines.
func (o *Options) Dumps() string {
	var lines []string
	for _, k := range o.own.keys() {
		lines = append(lines, k+"="+o.own.getText(k))
	}
	for _, g := range o.groups {
		for _, k := range g.vals.keys() {
			lines = append(lines, g.pkg+":"+k+"="+g.vals.getText(k))
		}
	}
	return strings.Join(lines, "\n")
}

// LoadOptions parses Dumps output back into an options bag.
func LoadOptions(text string) (*Options, error) {
	o := NewOptions()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, raw, err := splitValueLine(line)
		if err != nil {
			return nil, err
		}
		if pkg, opt, qualified := strings.Cut(key, ":"); qualified {
			if pkg == "" || opt == "" {
				return nil, fmt.Errorf("expected pkg:option on left of %q", line)
			}
			o.SetPackage(pkg, opt, ParseValue(raw))
			continue
		}
		o.Set(key, ParseValue(raw))
	}
	return o, nil
}
