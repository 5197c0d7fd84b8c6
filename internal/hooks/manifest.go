// Package hooks manages the git hook scripts that put metaguard in front of
// commits, checkouts and merges. It owns the hooks manifest, the script
// templates, and the installer that places rendered scripts into the
// repository's hook directory. Nothing in this package inspects pairing
// logic; the scripts it installs simply invoke the metaguard binary.
package hooks

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestDir is the per-repository metaguard directory.
	ManifestDir = ".metaguard"
	// ManifestName is the hooks manifest file inside ManifestDir.
	ManifestName = "hooks.yaml"
)

// HookSpec names one git hook and the metaguard arguments its script runs.
type HookSpec struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

// Manifest is the contents of .metaguard/hooks.yaml.
type Manifest struct {
	Version string     `yaml:"version"`
	Hooks   []HookSpec `yaml:"hooks"`
}

// DefaultManifest returns the manifest written on first install: the
// pre-commit gate plus advisory scans after checkout and merge.
func DefaultManifest() Manifest {
	return Manifest{
		Version: "1.0.0",
		Hooks: []HookSpec{
			{Name: "pre-commit", Args: []string{"check"}},
			{Name: "post-checkout", Args: []string{"scan", "--advisory"}},
			{Name: "post-merge", Args: []string{"scan", "--advisory"}},
		},
	}
}

// LoadManifest reads the manifest from the repository rooted at fs.
func LoadManifest(fs billy.Filesystem) (*Manifest, error) {
	path := fs.Join(ManifestDir, ManifestName)
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("malformed hooks manifest %s: %w", path, err)
	}
	return &m, nil
}

// SaveManifest writes the manifest to the repository rooted at fs, creating
// the metaguard directory as needed.
func SaveManifest(fs billy.Filesystem, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(ManifestDir, 0o755); err != nil {
		return err
	}
	return util.WriteFile(fs, fs.Join(ManifestDir, ManifestName), data, 0o644)
}

// LoadOrInitManifest returns the existing manifest, writing and returning
// the default one when none exists yet. A malformed manifest is an error,
// never silently replaced.
func LoadOrInitManifest(fs billy.Filesystem) (*Manifest, error) {
	m, err := LoadManifest(fs)
	if err == nil {
		return m, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	def := DefaultManifest()
	if err := SaveManifest(fs, def); err != nil {
		return nil, err
	}
	return &def, nil
}
