// Package source reads the package catalogs pakr installs from.
//
// The sources file lists catalog locations in priority order:
//
//	{"sources": ["./local-catalog.json", "https://example.com/catalog.json"]}
//
// Each catalog is a document {"packages": [descriptor, ...]} read from disk or
// fetched over HTTP. Both files may contain comments and trailing commas.
// A catalog that cannot be read or decoded contributes no packages and is
// reported as a warning; it never fails the caller.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/glorpus-work/pakr/internal/logger"
	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/fsutil"
	"github.com/glorpus-work/pakr/pkg/model"
	"github.com/tidwall/jsonc"
)

// JSONIndent is the indentation used when rewriting the sources file.
const JSONIndent = "    "

// Getter retrieves remote catalog documents.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Catalog resolves package names against the configured sources.
type Catalog struct {
	sourcesPath   string
	getter        Getter
	maxConcurrent int
}

type sourcesDocument struct {
	Sources []string `json:"sources"`
}

type packagesDocument struct {
	Packages []model.PackageDescriptor `json:"packages"`
}

// NewCatalog creates a Catalog backed by the sources file at sourcesPath.
// maxConcurrent bounds how many catalogs Search loads at once.
func NewCatalog(sourcesPath string, getter Getter, maxConcurrent int) *Catalog {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Catalog{
		sourcesPath:   sourcesPath,
		getter:        getter,
		maxConcurrent: maxConcurrent,
	}
}

// SourcesPath returns the location of the sources file.
func (c *Catalog) SourcesPath() string {
	return c.sourcesPath
}

// LoadSources returns the configured sources in order. A missing sources file yields no sources.
func (c *Catalog) LoadSources() ([]string, error) {
	data, err := os.ReadFile(c.sourcesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %w", errutils.ErrSourcesFile, err)
	}

	var doc sourcesDocument
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: cannot decode %s: %w", errutils.ErrSourcesFile, c.sourcesPath, err)
	}
	if doc.Sources == nil {
		doc.Sources = []string{}
	}
	return doc.Sources, nil
}

// AddSource appends source to the sources file unless it is already listed.
// It reports whether the file changed.
func (c *Catalog) AddSource(source string) (bool, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return false, fmt.Errorf("%w: source cannot be empty", errutils.ErrSourcesFile)
	}

	sources, err := c.LoadSources()
	if err != nil {
		return false, err
	}
	if slices.Contains(sources, source) {
		return false, nil
	}

	data, err := json.MarshalIndent(sourcesDocument{Sources: append(sources, source)}, "", JSONIndent)
	if err != nil {
		return false, fmt.Errorf("%w: %w", errutils.ErrSourcesFile, err)
	}
	if err := fsutil.WriteFileAtomic(c.sourcesPath, append(data, '\n'), fsutil.FileModeDefault); err != nil {
		return false, fmt.Errorf("%w: %w", errutils.ErrSourcesFile, err)
	}
	return true, nil
}

// LoadPackages returns the packages published by source keyed by name.
// Failures are logged and yield an empty mapping.
func (c *Catalog) LoadPackages(ctx context.Context, source string) map[string]*model.PackageDescriptor {
	list := c.loadList(ctx, source)
	packages := make(map[string]*model.PackageDescriptor, len(list))
	for _, pkg := range list {
		packages[pkg.Name] = pkg
	}
	return packages
}

// Find returns the descriptor of name from the first source that publishes it.
func (c *Catalog) Find(ctx context.Context, name string) (*model.PackageDescriptor, error) {
	sources, err := c.LoadSources()
	if err != nil {
		return nil, err
	}
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if pkg, ok := c.LoadPackages(ctx, source)[name]; ok {
			logger.Debug("Package resolved", logger.Fields{"package": name, "source": source})
			return pkg, nil
		}
	}
	return nil, errutils.ErrPackageNotFoundWithName(name)
}

// loadList reads the packages of source in document order. A name listed
// twice keeps its first position and its last descriptor.
func (c *Catalog) loadList(ctx context.Context, source string) []*model.PackageDescriptor {
	fields := logger.Fields{"source": source}

	data, err := c.read(ctx, source)
	if err != nil {
		fields["error"] = err
		logger.Warn("Failed to load packages from source", fields)
		return nil
	}

	var doc packagesDocument
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		fields["error"] = err
		logger.Warn("Failed to decode packages from source", fields)
		return nil
	}

	index := make(map[string]int, len(doc.Packages))
	list := make([]*model.PackageDescriptor, 0, len(doc.Packages))
	for i := range doc.Packages {
		pkg := doc.Packages[i]
		if pkg.Name == "" {
			logger.Warn("Ignoring package without a name", logger.Fields{"source": source, "position": i})
			continue
		}
		if pos, ok := index[pkg.Name]; ok {
			list[pos] = &pkg
			continue
		}
		index[pkg.Name] = len(list)
		list = append(list, &pkg)
	}
	return list
}

func (c *Catalog) read(ctx context.Context, source string) ([]byte, error) {
	if IsRemote(source) {
		if c.getter == nil {
			return nil, fmt.Errorf("no HTTP client configured for %s", source)
		}
		return c.getter.Get(ctx, source)
	}
	return os.ReadFile(source)
}

// IsRemote reports whether source is fetched over HTTP rather than read from disk.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
