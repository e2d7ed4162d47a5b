//go:build integration

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glorpus-work/pakr/pkg/config"
	"github.com/glorpus-work/pakr/pkg/installed"
	"github.com/glorpus-work/pakr/pkg/model"
	"github.com/glorpus-work/pakr/test/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv is an isolated pakr setup: a config file whose work_dir, state file
// and sources file all live below a temporary directory.
type testEnv struct {
	root    string
	cfgPath string
	workDir string
}

func newTestEnv(t *testing.T, extraSettings string) *testEnv {
	t.Helper()
	root := t.TempDir()
	workDir := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	cfgPath := testutil.SetupTestConfig(t, workDir, extraSettings)
	return &testEnv{root: root, cfgPath: cfgPath, workDir: workDir}
}

// run executes pakr with the environment's config and returns its stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"--config", e.cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// mustRun is run that fails the test on error.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "pakr %s failed, output: %s", strings.Join(args, " "), out)
	return out
}

func (e *testEnv) config(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig(e.cfgPath)
	require.NoError(t, err)
	return cfg
}

// installedPackages loads the installed package records the way pakr does.
func (e *testEnv) installedPackages(t *testing.T) []*model.InstalledPackage {
	t.Helper()
	cfg := e.config(t)
	backend, err := installed.NewBackend(cfg.Settings.StateBackend, cfg.StatePath())
	require.NoError(t, err)
	store, err := installed.Open(backend)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	return store.All()
}

// buildArtifact packs files (relative to the package root) into dir/fileName
// with the pack command and returns the artifact path and its digest.
func (e *testEnv) buildArtifact(t *testing.T, dir, fileName string, files map[string]string) (string, string) {
	t.Helper()
	src := filepath.Join(e.root, "src-"+fileName)
	for name, body := range files {
		path := filepath.Join(src, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	require.NoError(t, os.MkdirAll(dir, 0o755))

	artifact := filepath.Join(dir, fileName)
	out := e.mustRun(t, "--output", "json", "pack", src, artifact)

	var packed map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &packed))
	require.Equal(t, artifact, packed["path"])
	return artifact, packed["hash"]
}

// writeCatalog writes a package catalog document and returns its path.
func writeCatalog(t *testing.T, path string, packages ...model.PackageDescriptor) string {
	t.Helper()
	data, err := json.MarshalIndent(map[string]any{"packages": packages}, "", "    ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
