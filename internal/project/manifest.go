// Package project loads jsrb.toml, the per-project manifest that carries
// translator options and the correction table.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"jsrb/internal/correct"
)

// ManifestName is the file jsrb looks for when resolving project
// configuration.
const ManifestName = "jsrb.toml"

// ErrNoManifest indicates no jsrb.toml was found walking up from the
// start directory. Callers fall back to Default().
var ErrNoManifest = errors.New("project: no manifest found")

// TranslateConfig is the [translate] section.
type TranslateConfig struct {
	IndentWidth  int    `toml:"indent_width"`
	PrintBuiltin string `toml:"print_builtin"`
	FloorSource  string `toml:"floor_source"`
	Jobs         int    `toml:"jobs"`
}

// CorrectionsConfig is the [corrections] section. Rules listed here are
// appended after the stock table unless ReplaceDefaults is set, in which
// case they replace it entirely. Order in the file is preserved; the
// pipeline applies entries in exactly that order.
type CorrectionsConfig struct {
	ReplaceDefaults bool           `toml:"replace_defaults"`
	Rules           []correct.Rule `toml:"rule"`
}

// Manifest is the full decoded jsrb.toml.
type Manifest struct {
	Translate   TranslateConfig   `toml:"translate"`
	Corrections CorrectionsConfig `toml:"corrections"`

	// Root is the directory the manifest was loaded from, or "" for the
	// built-in default manifest.
	Root string `toml:"-"`
}

// Default returns the manifest used when no jsrb.toml exists.
func Default() *Manifest {
	return &Manifest{}
}

// Rules resolves the effective correction table.
func (m *Manifest) Rules() []correct.Rule {
	if m.Corrections.ReplaceDefaults {
		return m.Corrections.Rules
	}
	rules := correct.DefaultRules()
	return append(rules, m.Corrections.Rules...)
}

// CorrectOptions resolves the structural-pass options for the pipeline.
func (m *Manifest) CorrectOptions() correct.Options {
	return correct.Options{
		PrintBuiltin: m.Translate.PrintBuiltin,
		FloorSource:  m.Translate.FloorSource,
	}
}

// Load decodes a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	m.Root = filepath.Dir(path)
	return &m, nil
}

// Find walks up from startDir looking for jsrb.toml and loads the first
// one it meets. ErrNoManifest is returned when the walk reaches the
// filesystem root without a hit.
func Find(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoManifest
		}
		dir = parent
	}
}

// FindOrDefault resolves the manifest for startDir, falling back to the
// built-in default when none exists. Load failures of an existing file
// are still reported: a broken manifest should not be silently ignored.
func FindOrDefault(startDir string) (*Manifest, error) {
	m, err := Find(startDir)
	if errors.Is(err, ErrNoManifest) {
		return Default(), nil
	}
	return m, err
}
