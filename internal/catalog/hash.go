package catalog

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/blake3"
)

// Hash domains keep recipe hashes and artifact revisions in separate
// namespaces, the same scheme the identifier digests use.
const (
	domainRecipe   = "pkgid/recipe/v1"
	domainArtifact = "pkgid/artifact/v1"
)

func newDomainHasher(domain string) *blake3.Hasher {
	h := blake3.New()
	h.Write([]byte(domain))
	h.Write([]byte{0})
	return h
}

// HashArtifact derives a package revision from a built artifact's bytes.
// Two byte-identical artifacts always get the same revision.
func HashArtifact(r io.Reader) (string, error) {
	h := newDomainHasher(domainArtifact)
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash artifact: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashArtifactFile derives a package revision from an artifact file.
func HashArtifactFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hash artifact: %w", err)
	}
	defer f.Close()
	return HashArtifact(f)
}

// HashRecipeDir derives a recipe content hash from the CUE documents in a
// directory: every .cue file, sorted by slash-separated relative path, each
// contributing its path and bytes with NUL separators. Renaming a file or
// touching one byte changes the hash; file order on disk does not.
func HashRecipeDir(dir string) (string, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("hash recipe %s: %w", dir, err)
	}
	sort.Slice(paths, func(i, j int) bool {
		return relSlash(dir, paths[i]) < relSlash(dir, paths[j])
	})

	h := newDomainHasher(domainRecipe)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("hash recipe %s: %w", dir, err)
		}
		h.Write([]byte(relSlash(dir, path)))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func relSlash(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
