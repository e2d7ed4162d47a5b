package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/orchestrator"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install PACKAGE",
		Short: "Install a package",
		Long: `Install a package by name from the configured sources.

The artifact is fetched, checked against the published SHA-256 hash,
extracted and its install script run before the package is recorded
as installed. Installing an installed package does nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func runInstall(ctx context.Context, out io.Writer, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to load installed packages: %w", err)
	}
	defer closeStore(store)

	format := cfg.Settings.OutputFormat
	orch := loadOrchestrator(cfg, store, progressHooks(out, format))

	res, err := orch.InstallByName(ctx, name)
	if errors.Is(err, errutils.ErrPackageNotFound) {
		_, _ = fmt.Fprintf(out, "No package found with name: %s\n", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to install %s: %w", name, err)
	}

	if isStructured(format) {
		return writeStructured(out, format, installReport(name, res))
	}
	printInstallResult(out, name, res)
	return nil
}

func printInstallResult(out io.Writer, name string, res orchestrator.InstallResult) {
	if res.Status == orchestrator.StatusAlreadyInstalled {
		_, _ = fmt.Fprintf(out, "The package '%s' is already installed.\n", name)
		return
	}
	if res.ScriptErr != nil {
		_, _ = fmt.Fprintf(out, "Install script failed for %s. Error: %v\n", name, res.ScriptErr)
	}
	_, _ = fmt.Fprintf(out, "Successfully installed %s!\n", name)
}
