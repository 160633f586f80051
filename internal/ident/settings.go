package ident

import "strings"

// Settings is the ordered bag of dotted-path configuration keys for one
// evaluation (os, arch, compiler.version, ...). Declaration order is the
// canonical rendering order. A declared key holding the undefined value still
// renders as key=None; a pruned key renders nothing.
type Settings struct {
	vals *orderedValues
}

// NewSettings returns an empty settings bag.
func NewSettings() *Settings {
	return &Settings{vals: newOrderedValues()}
}

// Set declares the key on first use and stores the value. Setting a key that
// was pruned earlier restores it at its original declaration position.
func (s *Settings) Set(key string, v Value) {
	s.vals.set(key, v)
}

// Get returns the value for key and whether the key is present.
func (s *Settings) Get(key string) (Value, bool) {
	return s.vals.get(key)
}

// GetText renders the value for key. Absent keys render "None", matching the
// undefined rendering, so policy comparisons need no presence check.
func (s *Settings) GetText(key string) string {
	return s.vals.getText(key)
}

// Defined reports whether key is present with concrete text.
func (s *Settings) Defined(key string) bool {
	return s.vals.defined(key)
}

// Unset folds a present key to undefined. The key keeps its key=None line.
func (s *Settings) Unset(key string) {
	s.vals.unset(key)
}

// RemoveSubtree prunes the key and every dotted child under it, so
// RemoveSubtree("compiler.toolset") drops compiler.toolset and
// compiler.toolset.*. Pruned keys render nothing.
func (s *Settings) RemoveSubtree(prefix string) {
	s.vals.removePrefix(prefix)
}

// Keys returns the present keys in declaration order.
func (s *Settings) Keys() []string {
	return s.vals.keys()
}

// Len returns the number of present keys.
func (s *Settings) Len() int {
	return s.vals.len()
}

// Copy returns an independent copy sharing no state.
func (s *Settings) Copy() *Settings {
	return &Settings{vals: s.vals.copy()}
}

// Dumps renders one key=value line per present key in declaration order.
func (s *Settings) Dumps() string {
	return s.vals.dumps()
}

// LoadSettings parses Dumps output back into a settings bag. The "None"
// literal loads as the undefined marker, which re-renders identically.
func LoadSettings(text string) (*Settings, error) {
	s := NewSettings()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, raw, err := splitValueLine(line)
		if err != nil {
			return nil, err
		}
		s.Set(key, ParseValue(raw))
	}
	return s, nil
}
