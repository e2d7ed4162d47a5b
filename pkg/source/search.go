package source

import (
	"context"
	"strings"

	"github.com/glorpus-work/pakr/pkg/model"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"
)

// Match is a search hit together with the source that published it.
type Match struct {
	Package *model.PackageDescriptor
	Source  string
	// Score is the fuzzy ranking score; zero for substring matches.
	Score int
}

// Search looks for query in the names of every package of every source.
// Sources are loaded concurrently but results keep source order, and document
// order within a source. Without fuzzy the match is a case-insensitive
// substring test; with fuzzy, hits are ranked best first.
func (c *Catalog) Search(ctx context.Context, query string, fuzzyMatch bool) ([]Match, error) {
	sources, err := c.LoadSources()
	if err != nil {
		return nil, err
	}

	loaded := make([][]*model.PackageDescriptor, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)
	for i, source := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loaded[i] = c.loadList(gctx, source)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []Match
	for i, list := range loaded {
		for _, pkg := range list {
			candidates = append(candidates, Match{Package: pkg, Source: sources[i]})
		}
	}

	if fuzzyMatch {
		return rankFuzzy(query, candidates), nil
	}

	needle := strings.ToLower(query)
	matches := make([]Match, 0, len(candidates))
	for _, m := range candidates {
		if strings.Contains(strings.ToLower(m.Package.Name), needle) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

type candidateNames []Match

func (c candidateNames) String(i int) string { return c[i].Package.Name }
func (c candidateNames) Len() int            { return len(c) }

func rankFuzzy(query string, candidates []Match) []Match {
	results := fuzzy.FindFrom(query, candidateNames(candidates))
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = candidates[r.Index]
		matches[i].Score = r.Score
	}
	return matches
}
