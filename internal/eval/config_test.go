package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pkgid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ModeSemverDirect, cfg.DefaultMode)
	assert.True(t, cfg.RevisionsEnabled)
	assert.False(t, cfg.FullTransitive)
	assert.Equal(t, DefaultCatalogPath, cfg.CatalogPath)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
default_mode: full_package_mode
full_transitive: true
revisions_enabled: false
catalog_path: /var/lib/pkgid/catalog.db
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ModeFullPackage, cfg.DefaultMode)
	assert.True(t, cfg.FullTransitive)
	assert.False(t, cfg.RevisionsEnabled)
	assert.Equal(t, "/var/lib/pkgid/catalog.db", cfg.CatalogPath)
}

func TestLoadConfigPartial(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "default_mode: patch_mode\n"))
	require.NoError(t, err)

	assert.Equal(t, ModePatch, cfg.DefaultMode)
	assert.True(t, cfg.RevisionsEnabled, "absent keys keep their defaults")
	assert.Equal(t, DefaultCatalogPath, cfg.CatalogPath)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "default_mode: [not, a, string]\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "default_mode: nonsense_mode\n"))
	require.Error(t, err)
	assert.Equal(t, CodeUnknownMode, CodeOf(err),
		"an unknown default mode fails before any evaluation runs")
}
