// Package project handles the cubent.toml manifest and source discovery.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the manifest filename looked up from the working
// directory upward.
const ManifestName = "cubent.toml"

// Manifest is the parsed cubent.toml.
type Manifest struct {
	Pack  PackSection  `toml:"pack"`
	Build BuildSection `toml:"build"`

	// Dir is the directory the manifest was loaded from; not part of the
	// file itself.
	Dir string `toml:"-"`
}

type PackSection struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Icon        string `toml:"icon"`
}

type BuildSection struct {
	Source    string `toml:"source"`
	Output    string `toml:"output"`
	McVersion string `toml:"mc_version"`
}

// Default fills a manifest for a new project.
func Default(name string) *Manifest {
	return &Manifest{
		Pack: PackSection{
			Name:        name,
			Description: name + " datapack",
		},
		Build: BuildSection{
			Source:    "src",
			Output:    "dist/" + name,
			McVersion: "latest",
		},
	}
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	m.Dir = filepath.Dir(path)
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Pack.Name == "" {
		return fmt.Errorf("pack.name is required")
	}
	if m.Build.Source == "" {
		m.Build.Source = "src"
	}
	if m.Build.Output == "" {
		m.Build.Output = filepath.Join("dist", m.Pack.Name)
	}
	return nil
}

// Find walks from dir upward looking for cubent.toml, like Go tooling does
// with go.mod. Returns os.ErrNotExist when no manifest exists up to the
// filesystem root.
func Find(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		candidate := filepath.Join(abs, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, fmt.Errorf("%s not found in %s or any parent: %w",
				ManifestName, dir, os.ErrNotExist)
		}
		abs = parent
	}
}

// SourceDir resolves the source directory relative to the manifest.
func (m *Manifest) SourceDir() string {
	if filepath.IsAbs(m.Build.Source) {
		return m.Build.Source
	}
	return filepath.Join(m.Dir, m.Build.Source)
}

// OutputDir resolves the output directory relative to the manifest.
func (m *Manifest) OutputDir() string {
	if filepath.IsAbs(m.Build.Output) {
		return m.Build.Output
	}
	return filepath.Join(m.Dir, m.Build.Output)
}

// WriteTo writes a fresh manifest file, refusing to overwrite.
func (m *Manifest) WriteTo(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(m)
}
