package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Package.Name)
	}
	return out
}

func TestSearch_Substring(t *testing.T) {
	srv := catalogServer(t)
	local := writeFile(t, filepath.Join(t.TempDir(), "catalog.json"), localCatalog)
	catalog := newCatalog(t, `{"sources": ["`+local+`", "`+srv.URL+`/catalog.json", "`+srv.URL+`/missing.json"]}`)

	tests := []struct {
		query string
		want  []string
	}{
		{query: "foo", want: []string{"foo", "foobar", "foo"}},
		{query: "FOO", want: []string{"foo", "foobar", "foo"}},
		{query: "ux", want: []string{"qux"}},
		{query: "", want: []string{"foo", "foobar", "baz", "foo", "qux"}},
		{query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			matches, err := catalog.Search(context.Background(), tt.query, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(matches))
		})
	}
}

func TestSearch_ReportsSource(t *testing.T) {
	srv := catalogServer(t)
	local := writeFile(t, filepath.Join(t.TempDir(), "catalog.json"), localCatalog)
	remote := srv.URL + "/catalog.json"
	catalog := newCatalog(t, `{"sources": ["`+local+`", "`+remote+`"]}`)

	matches, err := catalog.Search(context.Background(), "foo", false)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, local, matches[0].Source)
	assert.Equal(t, remote, matches[2].Source)
	assert.Equal(t, "9.9", matches[2].Package.Version)
}

func TestSearch_Fuzzy(t *testing.T) {
	local := writeFile(t, filepath.Join(t.TempDir(), "catalog.json"), localCatalog)
	catalog := newCatalog(t, `{"sources": ["`+local+`"]}`)

	matches, err := catalog.Search(context.Background(), "fbr", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"foobar"}, names(matches))

	matches, err = catalog.Search(context.Background(), "fo", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"foo", "foobar"}, names(matches))
	assert.Equal(t, "foo", matches[0].Package.Name, "the tighter match ranks first")
}

func TestSearch_CanceledContext(t *testing.T) {
	local := writeFile(t, filepath.Join(t.TempDir(), "catalog.json"), localCatalog)
	catalog := newCatalog(t, `{"sources": ["`+local+`"]}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := catalog.Search(ctx, "foo", false)
	assert.ErrorIs(t, err, context.Canceled)
}
