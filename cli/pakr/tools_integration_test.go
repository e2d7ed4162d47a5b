//go:build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fooDigest = "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae"

func TestVerify(t *testing.T) {
	env := newTestEnv(t, "")
	file := filepath.Join(env.root, "foo.txt")
	require.NoError(t, os.WriteFile(file, []byte("foo"), 0o644))

	out := env.mustRun(t, "verify", file)
	assert.Equal(t, fooDigest+"  "+file+"\n", out)

	out = env.mustRun(t, "verify", file, fooDigest)
	assert.Contains(t, out, "OK")

	_, err := env.run(t, "verify", file, strings.ToUpper(fooDigest))
	var mismatch *errutils.HashMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, fooDigest, mismatch.Actual)

	_, err = env.run(t, "verify", filepath.Join(env.root, "missing.txt"))
	assert.Error(t, err)
}

func TestPack_PrintsCatalogEntry(t *testing.T) {
	env := newTestEnv(t, "")
	src := filepath.Join(env.root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "readme.txt"), []byte("hi"), 0o644))
	artifact := filepath.Join(env.root, "foo.zip")

	out := env.mustRun(t, "pack", src, artifact, "--name", "foo", "--version", "1.0.0")
	assert.Contains(t, out, "Created "+artifact)
	assert.Contains(t, out, `"name": "foo"`)
	assert.Contains(t, out, `"downloadURL": "`+artifact+`"`)
	assert.FileExists(t, artifact)

	_, err := env.run(t, "pack", src, filepath.Join(env.root, "foo.rar"))
	assert.ErrorIs(t, err, errutils.ErrUnsupportedFormat)
}

func TestConfig_InitSetGetShow(t *testing.T) {
	env := newTestEnv(t, "")
	cfgPath := filepath.Join(env.root, "fresh", "config.yaml")

	run := func(args ...string) (string, error) {
		return env.run(t, append([]string{"--config", cfgPath}, args...)...)
	}

	_, err := run("config", "init")
	require.NoError(t, err)
	assert.FileExists(t, cfgPath)

	_, err = run("config", "init")
	assert.ErrorIs(t, err, errutils.ErrConfigFileExists)
	_, err = run("config", "init", "--force")
	require.NoError(t, err)

	_, err = run("config", "set", "state_backend", "sqlite")
	require.NoError(t, err)
	out, err := run("config", "get", "state_backend")
	require.NoError(t, err)
	assert.Equal(t, "sqlite\n", out)

	_, err = run("config", "set", "output_format", "xml")
	assert.ErrorIs(t, err, errutils.ErrInvalidOutputFormat)

	out, err = run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "SETTING")
	assert.Regexp(t, `state_backend\s+sqlite`, out)
}

func TestGlobalFlags(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run(t, "-o", "xml", "list")
	assert.ErrorIs(t, err, errutils.ErrInvalidOutputFormat)

	out := env.mustRun(t, "version")
	assert.Contains(t, out, "pakr version")
}
