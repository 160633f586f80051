package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsDumpsOwnThenGroups(t *testing.T) {
	o := NewOptions()
	o.Set("shared", DefinedValue("False"))
	o.Set("fPIC", DefinedValue("True"))
	o.SetPackage("liba", "shared", DefinedValue("True"))
	o.SetPackage("libb", "optimized", DefinedValue("3"))
	o.SetPackage("liba", "header", DefinedValue("False"))

	assert.Equal(t,
		"shared=False\nfPIC=True\nliba:shared=True\nliba:header=False\nlibb:optimized=3",
		o.Dumps())
}

func TestOptionsGetTextQualified(t *testing.T) {
	o := NewOptions()
	o.Set("shared", DefinedValue("False"))
	o.SetPackage("liba", "shared", DefinedValue("True"))

	assert.Equal(t, "False", o.GetText("shared"))
	assert.Equal(t, "True", o.GetText("liba:shared"))
	assert.Equal(t, "None", o.GetText("liba:missing"))
	assert.Equal(t, "None", o.GetText("libz:shared"))
}

func TestOptionsOwnOnlyDropsGroups(t *testing.T) {
	o := NewOptions()
	o.Set("shared", DefinedValue("False"))
	o.SetPackage("liba", "shared", DefinedValue("True"))

	own := o.OwnOnly()

	assert.Equal(t, "shared=False", own.Dumps())
	assert.Empty(t, own.Packages())
	assert.Equal(t, []string{"liba"}, o.Packages())
}

func TestOptionsCopyIsIndependent(t *testing.T) {
	o := NewOptions()
	o.Set("shared", DefinedValue("False"))
	o.SetPackage("liba", "shared", DefinedValue("True"))

	c := o.Copy()
	c.Set("shared", DefinedValue("True"))
	c.SetPackage("liba", "shared", DefinedValue("False"))

	assert.Equal(t, "shared=False\nliba:shared=True", o.Dumps())
	assert.Equal(t, "shared=True\nliba:shared=False", c.Dumps())
}

func TestLoadOptionsRoundTrip(t *testing.T) {
	o := NewOptions()
	o.Set("shared", DefinedValue("False"))
	o.Set("variant", UndefinedValue())
	o.SetPackage("liba", "shared", DefinedValue("True"))

	loaded, err := LoadOptions(o.Dumps())
	require.NoError(t, err)

	assert.Equal(t, o.Dumps(), loaded.Dumps())
	assert.Equal(t, []string{"liba"}, loaded.Packages())
}

func TestLoadOptionsRejectsEmptyQualifier(t *testing.T) {
	_, err := LoadOptions(":shared=True")
	assert.Error(t, err)

	_, err = LoadOptions("liba:=True")
	assert.Error(t, err)
}
