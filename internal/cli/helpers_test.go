package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const appRecipe = `
package eval

recipe: {
	name:    "app"
	version: "1.0"
	settings: ["os", "build_type"]
	options: {
		shared: "False"
	}
	requires: ["hello/1.2.3"]
	packageId: {
		mode: "full_version_mode"
	}
}
`

const appGraph = `
package eval

graph: {
	reference: "app/1.0"
	settings: {
		os:         "Linux"
		build_type: "Release"
	}
	options: {
		shared: "False"
	}
	requires: [
		{ref: "hello/1.2.3#rrev1", packageId: "pid1", packageRevision: "prev1", direct: true},
	]
	recipeHash: "rhash1"
}
`

// writeEvalDir materializes CUE documents into a fresh evaluation directory.
func writeEvalDir(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// appDir writes the default app recipe and graph documents.
func appDir(t *testing.T) string {
	t.Helper()
	return writeEvalDir(t, map[string]string{
		"recipe.cue": appRecipe,
		"graph.cue":  appGraph,
	})
}

// decodeData unmarshals a JSON success envelope's data payload into v.
func decodeData(t *testing.T, out string, v any) {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v))
}

// executeCommand runs the root command with args and captures both streams.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}
