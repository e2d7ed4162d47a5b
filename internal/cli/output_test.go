package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/glorpus-work/pakr/pkg/model"
	"github.com/glorpus-work/pakr/pkg/orchestrator"
	"github.com/glorpus-work/pakr/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStructured(t *testing.T) {
	v := map[string][]string{"sources": {"a", "b"}}

	var buf bytes.Buffer
	require.NoError(t, writeStructured(&buf, FormatJSON, v))
	assert.JSONEq(t, `{"sources": ["a", "b"]}`, buf.String())

	buf.Reset()
	require.NoError(t, writeStructured(&buf, FormatYAML, v))
	assert.Contains(t, buf.String(), "sources:\n")
	assert.Contains(t, buf.String(), "- b\n")

	assert.Error(t, writeStructured(&buf, FormatTable, v))
}

func TestProgressHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := progressHooks(&buf, FormatTable)
	hooks.OnEvent(orchestrator.Event{Phase: orchestrator.PhaseFetching, Package: "foo", Msg: "./foo.zip"})
	hooks.OnEvent(orchestrator.Event{Phase: orchestrator.PhaseCommitting, Package: "foo"})
	assert.Equal(t, "fetching: foo (./foo.zip)\ncommitting: foo\n", buf.String())

	assert.Nil(t, progressHooks(&buf, FormatJSON).OnEvent)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "0123456...", truncate("0123456789abc", 10))
}

func TestInstallReport(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	record := model.NewInstalledPackage(model.PackageDescriptor{Name: "foo", Version: "1.0"}, at)

	report := installReport("foo", orchestrator.InstallResult{
		Status:    orchestrator.StatusInstalled,
		Record:    record,
		Script:    script.Result{Outcome: script.OutcomeFailed},
		ScriptErr: errors.New("exit status 1"),
	})
	assert.Equal(t, "installed", report.Status)
	assert.Equal(t, "1.0", report.Version)
	assert.Equal(t, "failed", report.Script)
	assert.Equal(t, "exit status 1", report.ScriptError)
	require.NotNil(t, report.InstallDate)
	assert.Equal(t, at, *report.InstallDate)
}

func TestFilterByName(t *testing.T) {
	pkgs := []*model.InstalledPackage{
		{PackageDescriptor: model.PackageDescriptor{Name: "FooBar"}},
		{PackageDescriptor: model.PackageDescriptor{Name: "baz"}},
	}
	assert.Len(t, filterByName(pkgs, ""), 2)

	filtered := filterByName(pkgs, "foo")
	require.Len(t, filtered, 1)
	assert.Equal(t, "FooBar", filtered[0].Name)
}
