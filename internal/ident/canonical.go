package ident

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical section headers, in rendering order.
const (
	sectionSettings     = "settings"
	sectionRequires     = "requires"
	sectionOptions      = "options"
	sectionFullSettings = "full_settings"
	sectionFullRequires = "full_requires"
	sectionFullOptions  = "full_options"
	sectionRecipeHash   = "recipe_hash"
	sectionEnv          = "env"
)

// ParseError reports a malformed line in canonical fingerprint text.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Dumps renders the canonical fingerprint text: every section in fixed order,
// items indented four spaces, a blank line closing each section. The text is
// NFC-normalized so one byte form exists per fingerprint.
func (pi *PackageInfo) Dumps() string {
	var b strings.Builder
	section := func(header, body string) {
		b.WriteByte('[')
		b.WriteString(header)
		b.WriteString("]\n")
		if body != "" {
			for _, line := range strings.Split(body, "\n") {
				b.WriteString("    ")
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}
	section(sectionSettings, pi.settings.Dumps())
	section(sectionRequires, pi.requires.Dumps())
	section(sectionOptions, pi.options.Dumps())
	section(sectionFullSettings, pi.fullSettings.Dumps())
	section(sectionFullRequires, pi.fullRequiresDumps())
	section(sectionFullOptions, pi.fullOptions.Dumps())
	section(sectionRecipeHash, pi.recipeHash)
	section(sectionEnv, pi.env.Dumps())
	return norm.NFC.String(b.String())
}

func (pi *PackageInfo) fullRequiresDumps() string {
	lines := make([]string, len(pi.fullRequires))
	for i, ref := range pi.fullRequires {
		lines[i] = ref.String()
	}
	return strings.Join(lines, "\n")
}

type canonicalLine struct {
	text string
	n    int
}

// Loads parses canonical fingerprint text back into a PackageInfo for
// inspection. The collapsed requirement entries recover their rendered fields
// only, so re-applying requirement modes to a loaded state is not meaningful.
func Loads(text string) (*PackageInfo, error) {
	bodies := make(map[string][]canonicalLine)
	current := ""
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		n := i + 1
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			name := line[1 : len(line)-1]
			if !knownSection(name) {
				return nil, &ParseError{Line: n, Message: fmt.Sprintf("unknown section %q", name)}
			}
			if _, dup := bodies[name]; dup {
				return nil, &ParseError{Line: n, Message: fmt.Sprintf("duplicate section %q", name)}
			}
			bodies[name] = []canonicalLine{}
			current = name
			continue
		}
		if current == "" {
			return nil, &ParseError{Line: n, Message: "content before any section header"}
		}
		bodies[current] = append(bodies[current], canonicalLine{text: line, n: n})
	}

	info := &PackageInfo{
		settings:     NewSettings(),
		options:      NewOptions(),
		requires:     NewRequirementsInfo(),
		fullSettings: NewSettings(),
		fullOptions:  NewOptions(),
		env:          NewEnvValues(),
	}
	if err := loadValueLines(bodies[sectionSettings], info.settings.Set); err != nil {
		return nil, err
	}
	if err := loadOptionLines(bodies[sectionOptions], info.options); err != nil {
		return nil, err
	}
	if err := loadValueLines(bodies[sectionFullSettings], info.fullSettings.Set); err != nil {
		return nil, err
	}
	if err := loadOptionLines(bodies[sectionFullOptions], info.fullOptions); err != nil {
		return nil, err
	}
	for _, line := range bodies[sectionRequires] {
		entry, err := parseRequirementLine(line.text)
		if err != nil {
			return nil, &ParseError{Line: line.n, Message: err.Error()}
		}
		if err := info.requires.addLoaded(entry); err != nil {
			return nil, &ParseError{Line: line.n, Message: err.Error()}
		}
	}
	for _, line := range bodies[sectionFullRequires] {
		ref, err := ParsePackageRef(line.text)
		if err != nil {
			return nil, &ParseError{Line: line.n, Message: err.Error()}
		}
		info.fullRequires = append(info.fullRequires, ref)
	}
	if lines := bodies[sectionRecipeHash]; len(lines) > 0 {
		if len(lines) > 1 {
			return nil, &ParseError{Line: lines[1].n, Message: "recipe_hash holds a single line"}
		}
		info.recipeHash = lines[0].text
	}
	for _, line := range bodies[sectionEnv] {
		key, raw, err := splitValueLine(line.text)
		if err != nil {
			return nil, &ParseError{Line: line.n, Message: err.Error()}
		}
		info.env.Set(key, raw)
	}
	return info, nil
}

func knownSection(name string) bool {
	switch name {
	case sectionSettings, sectionRequires, sectionOptions,
		sectionFullSettings, sectionFullRequires, sectionFullOptions,
		sectionRecipeHash, sectionEnv:
		return true
	}
	return false
}

func loadValueLines(lines []canonicalLine, set func(string, Value)) error {
	for _, line := range lines {
		key, raw, err := splitValueLine(line.text)
		if err != nil {
			return &ParseError{Line: line.n, Message: err.Error()}
		}
		set(key, ParseValue(raw))
	}
	return nil
}

func loadOptionLines(lines []canonicalLine, opts *Options) error {
	for _, line := range lines {
		key, raw, err := splitValueLine(line.text)
		if err != nil {
			return &ParseError{Line: line.n, Message: err.Error()}
		}
		if pkg, opt, qualified := strings.Cut(key, ":"); qualified {
			if pkg == "" || opt == "" {
				return &ParseError{Line: line.n, Message: fmt.Sprintf("expected pkg:option on left of %q", line.text)}
			}
			opts.SetPackage(pkg, opt, ParseValue(raw))
			continue
		}
		opts.Set(key, ParseValue(raw))
	}
	return nil
}

// parseRequirementLine parses one collapsed contribution:
// name/version[@user/channel][#rrev][:package_id[#prev]].
func parseRequirementLine(line string) (*RequirementInfo, error) {
	refPart, pkgPart, hasPackage := strings.Cut(line, ":")
	ref, err := ParseRef(refPart)
	if err != nil {
		return nil, err
	}
	entry := &RequirementInfo{
		name:           ref.Name,
		version:        string(ref.Version),
		user:           ref.User,
		channel:        ref.Channel,
		recipeRevision: ref.Revision,
	}
	if hasPackage {
		pkgID, prev, _ := strings.Cut(pkgPart, "#")
		if pkgID == "" {
			return nil, fmt.Errorf("requirement %q: empty package id after ':'", line)
		}
		entry.packageID = pkgID
		entry.packageRevision = prev
	}
	return entry, nil
}
