package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueUndefinedRendersNone(t *testing.T) {
	v := UndefinedValue()

	assert.False(t, v.Defined())
	assert.Equal(t, "None", v.String())
}

func TestValueDefinedRendersText(t *testing.T) {
	v := DefinedValue("Linux")

	assert.True(t, v.Defined())
	assert.Equal(t, "Linux", v.String())
}

func TestValueUndefinedEqualsNoneText(t *testing.T) {
	// Policy code compares with plain strings, so undefined must equal the
	// literal "None" in every comparison form.
	assert.True(t, UndefinedValue().EqualText("None"))
	assert.True(t, UndefinedValue().Equal(DefinedValue("None")))
	assert.True(t, DefinedValue("None").Equal(UndefinedValue()))
}

func TestValueDefinedComparison(t *testing.T) {
	assert.True(t, DefinedValue("gcc").EqualText("gcc"))
	assert.False(t, DefinedValue("gcc").EqualText("clang"))
	assert.False(t, DefinedValue("gcc").Equal(UndefinedValue()))
}

func TestParseValueRoundTrip(t *testing.T) {
	tests := []struct {
		raw     string
		defined bool
	}{
		{"Linux", true},
		{"8", true},
		{"", true},
		{"None", false},
	}
	for _, tt := range tests {
		v := ParseValue(tt.raw)
		assert.Equal(t, tt.defined, v.Defined(), "ParseValue(%q)", tt.raw)
		if tt.defined {
			assert.Equal(t, tt.raw, v.String())
		} else {
			assert.Equal(t, "None", v.String())
		}
	}
}
