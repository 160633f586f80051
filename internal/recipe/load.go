package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadMode controls how errors are handled during document loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Documents is the result of loading an evaluation directory.
type Documents struct {
	Recipe    *Recipe
	Graph     *Graph
	FileCount int
}

// Load reads the CUE files in dir, unifies them into one instance and parses
// the top-level `recipe` and `graph` documents. The recipe document is
// required; the graph document is optional so a recipe can be validated
// before any resolution has happened.
func Load(dir string, mode LoadMode) (*Documents, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("evaluation directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing evaluation directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	docs := &Documents{FileCount: len(cueFiles)}
	var errs []error

	recVal := value.LookupPath(cue.ParsePath("recipe"))
	if !recVal.Exists() {
		errs = append(errs, &LoadError{Code: ErrCodeRecipeDoc, Message: "no recipe document found"})
		if mode == LoadModeFailFast {
			return docs, errs
		}
	} else {
		rec, err := ParseRecipe(recVal)
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return docs, errs
			}
		} else {
			docs.Recipe = rec
		}
	}

	graphVal := value.LookupPath(cue.ParsePath("graph"))
	if graphVal.Exists() {
		g, err := ParseGraph(graphVal)
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return docs, errs
			}
		} else {
			docs.Graph = g
		}
	}

	return docs, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
