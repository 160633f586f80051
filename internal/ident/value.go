package ident

// undefinedText is the rendering of an undefined Value in canonical text.
// Persisted fingerprints predate the typed undefined marker, so the literal
// survives as the on-disk and comparison form.
const undefinedText = "None"

// Value holds one resolved setting or option entry: either concrete text or
// the undefined marker. Undefined renders and compares as the literal text
// "None", which lets policy code use plain string comparison without
// special-casing absence.
type Value struct {
	text    string
	defined bool
}

// DefinedValue returns a Value carrying concrete text.
func DefinedValue(text string) Value {
	return Value{text: text, defined: true}
}

// UndefinedValue returns the undefined marker.
func UndefinedValue() Value {
	return Value{}
}

// ParseValue maps the persisted "None" literal back to the undefined marker.
// Everything else is concrete text.
func ParseValue(text string) Value {
	if text == undefinedText {
		return UndefinedValue()
	}
	return DefinedValue(text)
}

// Defined reports whether the value carries concrete text.
func (v Value) Defined() bool {
	return v.defined
}

// String renders the value for canonical text. Undefined renders "None".
func (v Value) String() string {
	if !v.defined {
		return undefinedText
	}
	return v.text
}

// Equal compares two values by rendered text, so an undefined value equals a
// defined value holding the literal "None".
func (v Value) Equal(other Value) bool {
	return v.String() == other.String()
}

// EqualText compares the rendered value against raw text.
func (v Value) EqualText(text string) bool {
	return v.String() == text
}
