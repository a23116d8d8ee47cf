package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/mohae/deepcopy"
	"github.com/react-three/create/internal/project"
)

// FileName is the name of a project template document.
const FileName = "react-three.json"

// ErrNotFound is returned when no template exists in the directory or its parents.
var ErrNotFound = errors.New("options file not found")

// LoadOptions loads the react-three.json template from the current directory or a parent directory
func LoadOptions() (*project.Options, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadOptionsFromDir(dir)
}

// LoadOptionsFromPath loads generation options from a specific path
func LoadOptionsFromPath(path string) (*project.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	opts, err := project.ParseOptions(data)
	if err != nil {
		return nil, err
	}

	// Set defaults
	if opts.Language == "" {
		opts.Language = project.LanguageTypeScript
	}

	return opts, nil
}

// Overlay applies every field set in overrides on top of base. Maps and
// structs are merged key by key, so a slot in overrides keeps the options
// of the base slot. Slices and scalars in overrides replace those of base.
// base is not modified.
func Overlay(base *project.Options, overrides project.Options) (*project.Options, error) {
	out := project.Options{}
	if base != nil {
		out = deepcopy.Copy(*base).(project.Options)
	}
	if err := mergo.Merge(&out, overrides, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to apply options: %w", err)
	}
	return &out, nil
}

// loadOptionsFromDir searches for react-three.json in the given directory and its parents
func loadOptionsFromDir(startDir string) (*project.Options, string, error) {
	dir := startDir
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			opts, err := LoadOptionsFromPath(path)
			if err != nil {
				return nil, "", err
			}
			return opts, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("no %s found in %s or any parent directory: %w", FileName, startDir, ErrNotFound)
}
