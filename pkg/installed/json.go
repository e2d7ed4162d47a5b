package installed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/fsutil"
	"github.com/glorpus-work/pakr/pkg/model"
)

// JSONIndent is the indentation of the state file.
const JSONIndent = "    "

// JSONFileBackend stores the mapping as one JSON object keyed by package name.
type JSONFileBackend struct {
	path string
}

// NewJSONFileBackend creates a backend for the state file at path.
func NewJSONFileBackend(path string) *JSONFileBackend {
	return &JSONFileBackend{path: path}
}

// Path returns the state file location.
func (b *JSONFileBackend) Path() string {
	return b.path
}

// Load reads the state file. A missing or empty file is an empty mapping.
func (b *JSONFileBackend) Load() (map[string]*model.InstalledPackage, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*model.InstalledPackage{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]*model.InstalledPackage{}, nil
	}

	packages := map[string]*model.InstalledPackage{}
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errutils.ErrStateCorrupt, b.path, err)
	}
	for name, pkg := range packages {
		if pkg == nil {
			delete(packages, name)
			continue
		}
		if pkg.Name == "" {
			pkg.Name = name
		}
	}
	return packages, nil
}

// Save rewrites the whole state file atomically.
func (b *JSONFileBackend) Save(packages map[string]*model.InstalledPackage) error {
	if packages == nil {
		packages = map[string]*model.InstalledPackage{}
	}
	data, err := json.MarshalIndent(packages, "", JSONIndent)
	if err != nil {
		return fmt.Errorf("failed to marshal installed packages: %w", err)
	}
	data = append(data, '\n')
	return fsutil.WriteFileAtomic(b.path, data, fsutil.FileModeDefault)
}

// Close is a no-op.
func (b *JSONFileBackend) Close() error {
	return nil
}
