package installed

import (
	"sync"

	"github.com/glorpus-work/pakr/pkg/model"
)

// MemoryBackend keeps the mapping in memory. It backs tests and dry runs.
type MemoryBackend struct {
	mu       sync.Mutex
	packages map[string]*model.InstalledPackage
	saves    int
}

// NewMemoryBackend creates a backend seeded with copies of packages.
func NewMemoryBackend(packages ...*model.InstalledPackage) *MemoryBackend {
	b := &MemoryBackend{packages: map[string]*model.InstalledPackage{}}
	for _, pkg := range packages {
		cp := *pkg
		b.packages[pkg.Name] = &cp
	}
	return b
}

// Load returns a copy of the stored mapping.
func (b *MemoryBackend) Load() (map[string]*model.InstalledPackage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return clonePackages(b.packages), nil
}

// Save replaces the stored mapping with a copy of packages.
func (b *MemoryBackend) Save(packages map[string]*model.InstalledPackage) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.packages = clonePackages(packages)
	b.saves++
	return nil
}

// Saves returns how many times Save was called.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

// Close is a no-op.
func (b *MemoryBackend) Close() error {
	return nil
}

func clonePackages(in map[string]*model.InstalledPackage) map[string]*model.InstalledPackage {
	out := make(map[string]*model.InstalledPackage, len(in))
	for name, pkg := range in {
		cp := *pkg
		out[name] = &cp
	}
	return out
}
