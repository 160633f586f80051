package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pkgid", cmd.Use)
	assert.Contains(t, cmd.Long, "package identifiers")

	paths := [][]string{
		{"compute"},
		{"inspect"},
		{"modes"},
		{"validate"},
		{"catalog"},
		{"catalog", "add"},
		{"catalog", "get"},
		{"catalog", "list"},
		{"search"},
	}
	for _, path := range paths {
		subCmd, _, err := cmd.Find(path)
		require.NoError(t, err, "command %v", path)
		assert.Equal(t, path[len(path)-1], subCmd.Name())
	}
}

func TestRootPersistentFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	lookup := func(path []string, flag string, persistent bool) {
		t.Helper()
		subCmd, _, err := cmd.Find(path)
		require.NoError(t, err)
		flags := subCmd.Flags()
		if persistent {
			flags = subCmd.PersistentFlags()
		}
		require.NotNil(t, flags.Lookup(flag), "%v --%s", path, flag)
	}

	lookup([]string{"compute"}, "output", false)
	lookup([]string{"catalog"}, "db", true)
	lookup([]string{"catalog", "add"}, "artifact", false)
	lookup([]string{"search"}, "query", false)
	lookup([]string{"search"}, "db", false)

	computeCmd, _, err := cmd.Find([]string{"compute"})
	require.NoError(t, err)
	assert.Equal(t, "o", computeCmd.Flags().Lookup("output").Shorthand)

	searchCmd, _, err := cmd.Find([]string{"search"})
	require.NoError(t, err)
	assert.Equal(t, "q", searchCmd.Flags().Lookup("query").Shorthand)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestUnknownFormatRejected(t *testing.T) {
	_, _, err := executeCommand(t, "--format", "invalid", "modes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
