package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/pakr/pkg/download"
	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const localCatalog = `{
    // maintained by hand
    "packages": [
        {"name": "foo", "version": "1.0", "downloadURL": "./foo.zip", "hash": "abc"},
        {"name": "foobar", "version": "0.3", "downloadURL": "./foobar.tar.gz", "description": "Foo with a bar"},
        {"name": "baz", "version": "2.0", "downloadURL": "./baz.zip"},
    ]
}`

const remoteCatalog = `{"packages": [
    {"name": "foo", "version": "9.9", "downloadURL": "https://example.com/foo.zip"},
    {"name": "qux", "version": "0.1", "downloadURL": "https://example.com/qux.zip", "description": "Quick utility"}
]}`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/catalog.json":
			_, _ = w.Write([]byte(remoteCatalog))
		case "/broken.json":
			_, _ = w.Write([]byte("<html>not json</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newCatalog writes a sources file listing sources and returns a catalog reading it.
func newCatalog(t *testing.T, sources string) *Catalog {
	t.Helper()
	path := writeFile(t, filepath.Join(t.TempDir(), "sources.json"), sources)
	return NewCatalog(path, download.NewFetcher(0, ""), 2)
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()

	sources, err := NewCatalog(filepath.Join(dir, "missing.json"), nil, 1).LoadSources()
	require.NoError(t, err)
	assert.Empty(t, sources)

	path := writeFile(t, filepath.Join(dir, "sources.json"), `{
    "sources": [
        "./a.json", // first
        "https://example.com/b.json",
    ],
}`)
	sources, err = NewCatalog(path, nil, 1).LoadSources()
	require.NoError(t, err)
	assert.Equal(t, []string{"./a.json", "https://example.com/b.json"}, sources)

	broken := writeFile(t, filepath.Join(dir, "broken.json"), `{"sources": "nope"}`)
	_, err = NewCatalog(broken, nil, 1).LoadSources()
	assert.ErrorIs(t, err, errutils.ErrSourcesFile)
}

func TestAddSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.json")
	catalog := NewCatalog(path, nil, 1)

	added, err := catalog.AddSource("./a.json")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = catalog.AddSource("https://example.com/b.json")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = catalog.AddSource("./a.json")
	require.NoError(t, err)
	assert.False(t, added, "adding an existing source is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"sources\": [\n        \"./a.json\",\n        \"https://example.com/b.json\"\n    ]\n}\n", string(data))

	_, err = catalog.AddSource("  ")
	assert.ErrorIs(t, err, errutils.ErrSourcesFile)
}

func TestAddSource_KeepsCorruptFile(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "sources.json"), "{broken")

	_, err := NewCatalog(path, nil, 1).AddSource("./a.json")
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestLoadPackages(t *testing.T) {
	srv := catalogServer(t)
	dir := t.TempDir()
	local := writeFile(t, filepath.Join(dir, "catalog.json"), localCatalog)
	catalog := NewCatalog(filepath.Join(dir, "sources.json"), download.NewFetcher(0, ""), 1)
	ctx := context.Background()

	t.Run("local file with comments", func(t *testing.T) {
		packages := catalog.LoadPackages(ctx, local)
		require.Len(t, packages, 3)
		assert.Equal(t, "./foo.zip", packages["foo"].DownloadURL)
		assert.Equal(t, "abc", packages["foo"].Hash)
		assert.Equal(t, "Foo with a bar", packages["foobar"].Description)
	})

	t.Run("remote catalog", func(t *testing.T) {
		packages := catalog.LoadPackages(ctx, srv.URL+"/catalog.json")
		require.Len(t, packages, 2)
		assert.Equal(t, "9.9", packages["foo"].Version)
	})

	degraded := map[string]string{
		"missing local file": filepath.Join(dir, "missing.json"),
		"malformed local":    writeFile(t, filepath.Join(dir, "bad.json"), "{"),
		"http 404":           srv.URL + "/missing.json",
		"malformed remote":   srv.URL + "/broken.json",
		"unreachable":        "http://127.0.0.1:1/catalog.json",
	}
	for name, source := range degraded {
		t.Run(name, func(t *testing.T) {
			packages := catalog.LoadPackages(ctx, source)
			assert.NotNil(t, packages)
			assert.Empty(t, packages)
		})
	}
}

func TestLoadPackages_DuplicateNamesKeepLastDescriptor(t *testing.T) {
	dir := t.TempDir()
	local := writeFile(t, filepath.Join(dir, "catalog.json"), `{"packages": [
        {"name": "foo", "version": "1.0", "downloadURL": "./foo-1.zip"},
        {"name": "", "version": "0", "downloadURL": "./nameless.zip"},
        {"name": "foo", "version": "2.0", "downloadURL": "./foo-2.zip"}
    ]}`)

	packages := NewCatalog(filepath.Join(dir, "sources.json"), nil, 1).LoadPackages(context.Background(), local)
	require.Len(t, packages, 1)
	assert.Equal(t, "2.0", packages["foo"].Version)
}

func TestFind(t *testing.T) {
	srv := catalogServer(t)
	dir := t.TempDir()
	local := writeFile(t, filepath.Join(dir, "catalog.json"), localCatalog)
	ctx := context.Background()

	catalog := newCatalog(t, `{"sources": ["`+srv.URL+`/missing.json", "`+local+`", "`+srv.URL+`/catalog.json"]}`)

	pkg, err := catalog.Find(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, "1.0", pkg.Version, "the first source publishing a name wins")

	pkg, err = catalog.Find(ctx, "qux")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/qux.zip", pkg.DownloadURL)

	_, err = catalog.Find(ctx, "nothing")
	assert.ErrorIs(t, err, errutils.ErrPackageNotFound)
	assert.Contains(t, err.Error(), "nothing")
}

func TestFind_NoSourcesFile(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "sources.json"), nil, 1)
	_, err := catalog.Find(context.Background(), "foo")
	assert.ErrorIs(t, err, errutils.ErrPackageNotFound)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("http://example.com/a.json"))
	assert.True(t, IsRemote("HTTPS://example.com/a.json"))
	assert.False(t, IsRemote("./http-catalog.json"))
	assert.False(t, IsRemote("/srv/catalog.json"))
}
