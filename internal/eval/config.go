package eval

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCatalogPath is where the binary catalog database lives when the
// configuration does not say otherwise.
const DefaultCatalogPath = "pkgid.db"

// Config is the process-wide evaluation configuration. It is resolved once
// before any evaluation begins and treated read-only afterwards; evaluations
// never mutate it.
type Config struct {
	// DefaultMode applies to every requirement absent a recipe override.
	DefaultMode Mode

	// FullTransitive erases the direct/indirect distinction for mode
	// application, so revision-bearing modes see every closure edge.
	FullTransitive bool

	// RevisionsEnabled gates revision tracking. When false, edge revisions are
	// blanked at seeding and the revision-bearing modes degrade to their
	// non-revision analogue.
	RevisionsEnabled bool

	// CatalogPath locates the binary catalog database.
	CatalogPath string
}

// DefaultConfig returns the configuration used when no file is given:
// semver_direct_mode, revisions on, no full-transitive evaluation.
func DefaultConfig() Config {
	return Config{
		DefaultMode:      ModeSemverDirect,
		RevisionsEnabled: true,
		CatalogPath:      DefaultCatalogPath,
	}
}

// fileConfig is the YAML shape. Pointer fields distinguish an absent key
// from an explicit false, so a file can override any subset of the defaults.
type fileConfig struct {
	DefaultMode      string `yaml:"default_mode"`
	FullTransitive   *bool  `yaml:"full_transitive"`
	RevisionsEnabled *bool  `yaml:"revisions_enabled"`
	CatalogPath      string `yaml:"catalog_path"`
}

// LoadConfig reads a YAML configuration file and merges it over the
// defaults. An unknown default mode fails here, before any evaluation runs.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if fc.DefaultMode != "" {
		mode, err := ParseMode(fc.DefaultMode)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		cfg.DefaultMode = mode
	}
	if fc.FullTransitive != nil {
		cfg.FullTransitive = *fc.FullTransitive
	}
	if fc.RevisionsEnabled != nil {
		cfg.RevisionsEnabled = *fc.RevisionsEnabled
	}
	if fc.CatalogPath != "" {
		cfg.CatalogPath = fc.CatalogPath
	}
	return cfg, nil
}
