package ident

import (
	"fmt"
	"strings"
)

// orderedValues is the ordering backbone shared by Settings, Options and
// EnvValues: a key/value bag that renders in declaration order. The order
// slice survives removal, so a key restored later returns to its original
// position instead of sinking to the end of the canonical text.
type orderedValues struct {
	order   []string
	present map[string]Value
}

func newOrderedValues() *orderedValues {
	return &orderedValues{present: make(map[string]Value)}
}

// set declares the key on first use and stores the value.
func (o *orderedValues) set(key string, v Value) {
	if _, declared := o.present[key]; !declared && !o.declared(key) {
		o.order = append(o.order, key)
	}
	o.present[key] = v
}

func (o *orderedValues) declared(key string) bool {
	for _, k := range o.order {
		if k == key {
			return true
		}
	}
	return false
}

func (o *orderedValues) get(key string) (Value, bool) {
	v, ok := o.present[key]
	return v, ok
}

// getText renders the value for key, with absent keys rendering "None" the
// same way an undefined value does.
func (o *orderedValues) getText(key string) string {
	v, ok := o.present[key]
	if !ok {
		return undefinedText
	}
	return v.String()
}

// defined reports whether key is present with concrete text.
func (o *orderedValues) defined(key string) bool {
	v, ok := o.present[key]
	return ok && v.Defined()
}

// unset folds a present key to the undefined marker. Unlike remove, the key
// keeps rendering as key=None.
func (o *orderedValues) unset(key string) {
	if _, ok := o.present[key]; ok {
		o.present[key] = UndefinedValue()
	}
}

// remove drops the key from rendering. The declaration slot is retained so a
// later set restores the original position.
func (o *orderedValues) remove(key string) {
	delete(o.present, key)
}

// removePrefix drops the key itself and every dotted child under it.
func (o *orderedValues) removePrefix(prefix string) {
	dotted := prefix + "."
	for _, k := range o.order {
		if k == prefix || strings.HasPrefix(k, dotted) {
			delete(o.present, k)
		}
	}
}

func (o *orderedValues) copy() *orderedValues {
	dup := &orderedValues{
		order:   append([]string(nil), o.order...),
		present: make(map[string]Value, len(o.present)),
	}
	for k, v := range o.present {
		dup.present[k] = v
	}
	return dup
}

// keys returns the present keys in declaration order.
func (o *orderedValues) keys() []string {
	keys := make([]string, 0, len(o.present))
	for _, k := range o.order {
		if _, ok := o.present[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func (o *orderedValues) len() int {
	return len(o.present)
}

// dumps renders one key=value line per present key, declaration order,
// undefined values as "None".
func (o *orderedValues) dumps() string {
	var lines []string
	for _, k := range o.keys() {
		lines = append(lines, k+"="+o.present[k].String())
	}
	return strings.Join(lines, "\n")
}

// splitValueLine splits one canonical key=value line.
func splitValueLine(line string) (key, value string, err error) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", fmt.Errorf("expected key=value, got %q", line)
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), nil
}
