package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageDescriptor_JSONKeys(t *testing.T) {
	var desc PackageDescriptor
	data := `{"name":"foo","version":"1.0","downloadURL":"./foo.zip","hash":"abc"}`
	require.NoError(t, json.Unmarshal([]byte(data), &desc))

	assert.Equal(t, "foo", desc.Name)
	assert.Equal(t, "./foo.zip", desc.DownloadURL)
	assert.True(t, desc.HasHash())
	assert.Equal(t, "No description available", desc.DisplayDescription())

	out, err := json.Marshal(PackageDescriptor{Name: "bar", Version: "2", DownloadURL: "x"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "hash")
	assert.NotContains(t, string(out), "description")
}

func TestPackageDescriptor_HasHash(t *testing.T) {
	assert.False(t, (&PackageDescriptor{}).HasHash())
	assert.False(t, (&PackageDescriptor{Hash: "  "}).HasHash())
	assert.True(t, (&PackageDescriptor{Hash: "00ff"}).HasHash())
}

func TestInstalledPackage_JSON(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	pkg := NewInstalledPackage(PackageDescriptor{Name: "foo", Version: "1.0", DownloadURL: "./foo.zip"}, at)

	out, err := json.Marshal(pkg)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"install_date":"2024-03-01T10:30:00Z"`)
	assert.Contains(t, string(out), `"name":"foo"`)

	var back InstalledPackage
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, *pkg, back)
}

func TestInstalledPackage_CamelCaseDate(t *testing.T) {
	var pkg InstalledPackage
	data := `{"name":"foo","version":"1.0","downloadURL":"u","installDate":"2024-03-01T10:30:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(data), &pkg))

	assert.Equal(t, "foo", pkg.Name)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), pkg.InstallDate.UTC())
}

func TestInstalledPackage_DateWithoutOffset(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{"fractional seconds", "2024-01-02T03:04:05.123456", time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.Local)},
		{"whole seconds", "2024-01-02T03:04:05", time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)},
		{"space separator", "2024-01-02 03:04:05", time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)},
		{"with offset", "2024-01-02T03:04:05+02:00", time.Date(2024, 1, 2, 1, 4, 5, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pkg InstalledPackage
			data := `{"name":"foo","version":"1.0","downloadURL":"u","install_date":"` + tt.date + `"}`
			require.NoError(t, json.Unmarshal([]byte(data), &pkg))
			assert.True(t, tt.want.Equal(pkg.InstallDate), "got %s", pkg.InstallDate)
		})
	}
}

func TestInstalledPackage_InvalidDate(t *testing.T) {
	var pkg InstalledPackage
	err := json.Unmarshal([]byte(`{"name":"foo","install_date":"yesterday"}`), &pkg)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"foo","install_date":null}`), &pkg))
	assert.True(t, pkg.InstallDate.IsZero())
}

func TestInstallScript_Complete(t *testing.T) {
	var nilScript *InstallScript
	assert.False(t, nilScript.Complete())
	assert.False(t, (&InstallScript{Script: "install.sh"}).Complete())
	assert.False(t, (&InstallScript{Type: ScriptTypeBash}).Complete())
	assert.True(t, (&InstallScript{Script: "install.sh", Type: ScriptTypeBash}).Complete())
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     Transition
	}{
		{name: "upgrade", old: "1.0.0", new: "1.2.0", want: TransitionUpgrade},
		{name: "downgrade", old: "2.0", new: "1.9.9", want: TransitionDowngrade},
		{name: "identical", old: "1.0", new: "1.0", want: TransitionReinstall},
		{name: "equal but differently spelled", old: "1.0", new: "1.0.0", want: TransitionReinstall},
		{name: "identical free text", old: "nightly", new: "nightly", want: TransitionReinstall},
		{name: "unparseable", old: "nightly", new: "1.0", want: TransitionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareVersions(tt.old, tt.new))
		})
	}
}
