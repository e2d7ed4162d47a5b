// Package testutil serves package catalogs and artifacts to tests over HTTP.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/pakr/pkg/model"
)

// CatalogPath is where TestServer publishes its package catalog.
const CatalogPath = "/packages.json"

// TestServer represents a test HTTP server publishing one catalog and the artifacts of a directory.
type TestServer struct {
	Server *httptest.Server
	URL    string
}

// NewTestServer serves the files of dir below /dist/ and, at CatalogPath, the
// packages catalog returns for the server's base URL. The server is closed
// when the test ends.
func NewTestServer(t *testing.T, dir string, catalog func(baseURL string) []model.PackageDescriptor) *TestServer {
	t.Helper()
	ts := &TestServer{}

	mux := http.NewServeMux()
	mux.HandleFunc(CatalogPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"packages": catalog("http://" + r.Host)}); err != nil {
			t.Logf("Test server error: %v", err)
		}
	})
	mux.Handle("/dist/", http.StripPrefix("/dist/", http.FileServer(http.Dir(dir))))

	ts.Server = httptest.NewServer(mux)
	ts.URL = ts.Server.URL
	t.Cleanup(ts.Server.Close)
	return ts
}

// CatalogURL returns the URL of the published catalog.
func (ts *TestServer) CatalogURL() string {
	return ts.URL + CatalogPath
}

// ArtifactURL returns the URL of a file of the served directory.
func (ts *TestServer) ArtifactURL(name string) string {
	return ts.URL + "/dist/" + name
}

// SetupTestConfig writes a config file that keeps all pakr state below workDir.
// extra is appended to the settings block and must be indented by two spaces.
func SetupTestConfig(t *testing.T, workDir, extra string) string {
	t.Helper()

	content := "settings:\n  work_dir: " + workDir + "\n  log_level: error\n" + extra
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}
