// Package installed keeps the record of installed packages.
//
// A Store holds the full name to record mapping in memory. It is loaded once
// from a Backend and written back in full by Persist after every mutation.
package installed

import (
	"fmt"
	"sort"
	"sync"

	"github.com/glorpus-work/pakr/pkg/model"
)

// Backend persists the complete installed-package mapping.
type Backend interface {
	// Load returns the stored mapping. Missing storage yields an empty mapping and no error.
	Load() (map[string]*model.InstalledPackage, error)
	// Save replaces the stored mapping with packages.
	Save(packages map[string]*model.InstalledPackage) error
	Close() error
}

// Store is the in-memory view of installed packages.
type Store struct {
	backend  Backend
	packages map[string]*model.InstalledPackage
	rwMutex  sync.RWMutex
}

// NewStore creates an empty store on top of backend. Call Load to read existing state.
func NewStore(backend Backend) *Store {
	return &Store{
		backend:  backend,
		packages: make(map[string]*model.InstalledPackage),
	}
}

// Open creates a store on backend and loads it.
func Open(backend Backend) (*Store, error) {
	s := NewStore(backend)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory state with the backend contents.
func (s *Store) Load() error {
	packages, err := s.backend.Load()
	if err != nil {
		return fmt.Errorf("failed to load installed packages: %w", err)
	}
	if packages == nil {
		packages = make(map[string]*model.InstalledPackage)
	}
	s.rwMutex.Lock()
	defer s.rwMutex.Unlock()
	s.packages = packages
	return nil
}

// Has reports whether name is installed.
func (s *Store) Has(name string) bool {
	s.rwMutex.RLock()
	defer s.rwMutex.RUnlock()
	_, ok := s.packages[name]
	return ok
}

// Get returns a copy of the record for name.
func (s *Store) Get(name string) (*model.InstalledPackage, bool) {
	s.rwMutex.RLock()
	defer s.rwMutex.RUnlock()
	pkg, ok := s.packages[name]
	if !ok {
		return nil, false
	}
	cp := *pkg
	return &cp, true
}

// Put inserts or replaces the record keyed by its name.
func (s *Store) Put(pkg *model.InstalledPackage) {
	cp := *pkg
	s.rwMutex.Lock()
	defer s.rwMutex.Unlock()
	s.packages[pkg.Name] = &cp
}

// Remove deletes name and reports whether it was present.
func (s *Store) Remove(name string) bool {
	s.rwMutex.Lock()
	defer s.rwMutex.Unlock()
	if _, ok := s.packages[name]; !ok {
		return false
	}
	delete(s.packages, name)
	return true
}

// All returns copies of every record sorted by name.
func (s *Store) All() []*model.InstalledPackage {
	s.rwMutex.RLock()
	defer s.rwMutex.RUnlock()
	result := make([]*model.InstalledPackage, 0, len(s.packages))
	for _, pkg := range s.packages {
		cp := *pkg
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Len returns the number of installed packages.
func (s *Store) Len() int {
	s.rwMutex.RLock()
	defer s.rwMutex.RUnlock()
	return len(s.packages)
}

// Persist writes the entire mapping to the backend.
func (s *Store) Persist() error {
	s.rwMutex.RLock()
	snapshot := make(map[string]*model.InstalledPackage, len(s.packages))
	for name, pkg := range s.packages {
		cp := *pkg
		snapshot[name] = &cp
	}
	s.rwMutex.RUnlock()

	if err := s.backend.Save(snapshot); err != nil {
		return fmt.Errorf("failed to persist installed packages: %w", err)
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
