package cli

import (
	"fmt"
	"io"

	"github.com/glorpus-work/pakr/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall PACKAGE",
		Short: "Uninstall a package",
		Long: `Remove a package from the installed package records.

Only the record is removed; files an install script placed elsewhere
are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func runUninstall(out io.Writer, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to load installed packages: %w", err)
	}
	defer closeStore(store)

	orch := &orchestrator.Orchestrator{Store: store}
	removed, err := orch.Uninstall(name)
	if err != nil {
		return fmt.Errorf("failed to uninstall %s: %w", name, err)
	}

	format := cfg.Settings.OutputFormat
	if isStructured(format) {
		status := "uninstalled"
		if !removed {
			status = "not-installed"
		}
		return writeStructured(out, format, operationReport{Package: name, Status: status})
	}

	if removed {
		_, _ = fmt.Fprintf(out, "Successfully uninstalled %s!\n", name)
	} else {
		_, _ = fmt.Fprintf(out, "Package %s is not installed.\n", name)
	}
	return nil
}
