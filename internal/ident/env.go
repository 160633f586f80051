package ident

// EnvValues carries the environment entries captured at evaluation time.
// They round-trip through the canonical text so a build can be reproduced,
// but they never reach the fingerprint digest.
type EnvValues struct {
	vals *orderedValues
}

// NewEnvValues returns an empty environment bag.
func NewEnvValues() *EnvValues {
	return &EnvValues{vals: newOrderedValues()}
}

// Set declares the variable on first use and stores its text.
func (e *EnvValues) Set(name, value string) {
	e.vals.set(name, DefinedValue(value))
}

// Get returns the variable's text and whether it is present.
func (e *EnvValues) Get(name string) (string, bool) {
	v, ok := e.vals.get(name)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// Keys returns the variable names in declaration order.
func (e *EnvValues) Keys() []string {
	return e.vals.keys()
}

// Len returns the number of variables.
func (e *EnvValues) Len() int {
	return e.vals.len()
}

// Copy returns an independent copy.
func (e *EnvValues) Copy() *EnvValues {
	return &EnvValues{vals: e.vals.copy()}
}

// Dumps renders one name=value line per variable in declaration order.
func (e *EnvValues) Dumps() string {
	return e.vals.dumps()
}
