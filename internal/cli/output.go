package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/glorpus-work/pakr/pkg/config"
	"github.com/glorpus-work/pakr/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func isStructured(format string) bool {
	return format == FormatJSON || format == FormatYAML
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not a structured output format", format)
	}
}

// progressHooks prints pipeline phases in table mode and stays silent otherwise.
func progressHooks(w io.Writer, format string) orchestrator.Hooks {
	if isStructured(format) {
		return orchestrator.Hooks{}
	}
	return orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		if e.Msg != "" {
			_, _ = fmt.Fprintf(w, "%s: %s (%s)\n", e.Phase, e.Package, e.Msg)
		} else {
			_, _ = fmt.Fprintf(w, "%s: %s\n", e.Phase, e.Package)
		}
	}}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format(time.DateTime)
}

// operationReport is the structured output of install, uninstall and update.
type operationReport struct {
	Package     string     `json:"package" yaml:"package"`
	Status      string     `json:"status" yaml:"status"`
	Version     string     `json:"version,omitempty" yaml:"version,omitempty"`
	Previous    string     `json:"previous_version,omitempty" yaml:"previous_version,omitempty"`
	Transition  string     `json:"transition,omitempty" yaml:"transition,omitempty"`
	Script      string     `json:"script,omitempty" yaml:"script,omitempty"`
	ScriptError string     `json:"script_error,omitempty" yaml:"script_error,omitempty"`
	InstallDate *time.Time `json:"install_date,omitempty" yaml:"install_date,omitempty"`
}

func installReport(name string, res orchestrator.InstallResult) operationReport {
	report := operationReport{
		Package: name,
		Status:  string(res.Status),
		Script:  string(res.Script.Outcome),
	}
	if res.Record != nil {
		report.Version = res.Record.Version
		date := res.Record.InstallDate
		report.InstallDate = &date
	}
	if res.ScriptErr != nil {
		report.ScriptError = res.ScriptErr.Error()
	}
	return report
}
