package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/pakr/pkg/config"
	"github.com/glorpus-work/pakr/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) []byte {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return body
}

func TestTestServer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.zip"), []byte("zip"), 0o644))

	ts := NewTestServer(t, dir, func(baseURL string) []model.PackageDescriptor {
		return []model.PackageDescriptor{{Name: "foo", Version: "1.0", DownloadURL: baseURL + "/dist/foo.zip"}}
	})

	var doc struct {
		Packages []model.PackageDescriptor `json:"packages"`
	}
	require.NoError(t, json.Unmarshal(get(t, ts.CatalogURL()), &doc))
	require.Len(t, doc.Packages, 1)
	assert.Equal(t, ts.ArtifactURL("foo.zip"), doc.Packages[0].DownloadURL)

	assert.Equal(t, []byte("zip"), get(t, ts.ArtifactURL("foo.zip")))
}

func TestSetupTestConfig(t *testing.T) {
	workDir := t.TempDir()
	cfg, err := config.LoadConfig(SetupTestConfig(t, workDir, "  state_backend: sqlite\n"))
	require.NoError(t, err)

	assert.Equal(t, workDir, cfg.Settings.WorkDir)
	assert.Equal(t, "error", cfg.Settings.LogLevel)
	assert.Equal(t, config.BackendSQLite, cfg.Settings.StateBackend)
	assert.Equal(t, filepath.Join(workDir, config.DefaultStateFile), cfg.StatePath())
}
