package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFile is the package manifest read from the project root.
const ManifestFile = "package.json"

// Manifest is the subset of package.json the analyzer reports.
type Manifest struct {
	Name            string            `json:"name,omitempty" yaml:"name,omitempty"`
	Version         string            `json:"version,omitempty" yaml:"version,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty" yaml:"devDependencies,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

// Dependency returns the version range of a runtime or dev dependency.
func (m *Manifest) Dependency(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	if v, ok := m.Dependencies[name]; ok {
		return v, true
	}
	v, ok := m.DevDependencies[name]
	return v, ok
}

// ReadManifest reads package.json from root. A missing file yields nil without error.
func ReadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}
	return &m, nil
}
