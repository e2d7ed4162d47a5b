package model

// PackageMetadataFile is the name of the metadata file looked up in a package root.
const PackageMetadataFile = "package.json"

// ScriptType names the interpreter family of an install script.
type ScriptType string

// Known script types.
const (
	ScriptTypePython     ScriptType = "python"
	ScriptTypeBash       ScriptType = "bash"
	ScriptTypePowerShell ScriptType = "powershell"
	ScriptTypeTengo      ScriptType = "tengo"
)

// PackageMetadata is the content of package.json inside an extracted package root.
type PackageMetadata struct {
	InstallScript *InstallScript `json:"install_script,omitempty"`
}

// InstallScript describes the optional install step of a package.
// Both fields must be set for the step to run.
type InstallScript struct {
	Script string     `json:"script"`
	Type   ScriptType `json:"type"`
}

// Complete reports whether both script and type are present.
func (s *InstallScript) Complete() bool {
	return s != nil && s.Script != "" && s.Type != ""
}
