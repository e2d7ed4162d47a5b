package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/spf13/cobra"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update PACKAGE",
		Short: "Update an installed package",
		Long: `Reinstall an installed package from the descriptor the sources publish now.

The version change is reported as an upgrade, downgrade or reinstall. If
the new installation fails the previous record is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func runUpdate(ctx context.Context, out io.Writer, name string) error {
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

	res, err := orch.Update(ctx, name)
	switch {
	case errors.Is(err, errutils.ErrNotInstalled):
		_, _ = fmt.Fprintf(out, "Package %s is not installed.\n", name)
		return nil
	case errors.Is(err, errutils.ErrPackageNotFound):
		_, _ = fmt.Fprintf(out, "No package found with name: %s\n", name)
		return nil
	case err != nil:
		return fmt.Errorf("failed to update %s: %w", name, err)
	}

	if isStructured(format) {
		report := installReport(name, res.Install)
		report.Status = "updated"
		report.Previous = res.Previous.Version
		report.Transition = string(res.Transition)
		return writeStructured(out, format, report)
	}

	if res.Install.ScriptErr != nil {
		_, _ = fmt.Fprintf(out, "Install script failed for %s. Error: %v\n", name, res.Install.ScriptErr)
	}
	_, _ = fmt.Fprintf(out, "Updated %s: %s -> %s (%s)\n", name, res.Previous.Version, res.Install.Record.Version, res.Transition)
	return nil
}
