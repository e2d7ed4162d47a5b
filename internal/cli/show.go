package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show PACKAGE",
		Short: "Show details of an installed package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func runShow(out io.Writer, name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to load installed packages: %w", err)
	}
	defer closeStore(store)

	pkg, ok := store.Get(name)
	if !ok {
		_, _ = fmt.Fprintf(out, "Package %s is not installed.\n", name)
		return nil
	}

	format := cfg.Settings.OutputFormat
	if isStructured(format) {
		return writeStructured(out, format, pkg)
	}

	_, _ = fmt.Fprintf(out, "Details for package %s:\n", name)
	_, _ = fmt.Fprintf(out, "  Name: %s\n", pkg.Name)
	_, _ = fmt.Fprintf(out, "  Version: %s\n", pkg.Version)
	_, _ = fmt.Fprintf(out, "  Install Date: %s\n", formatDate(pkg.InstallDate))
	_, _ = fmt.Fprintf(out, "  Description: %s\n", pkg.DisplayDescription())
	if pkg.DownloadURL != "" {
		_, _ = fmt.Fprintf(out, "  Download URL: %s\n", pkg.DownloadURL)
	}
	if pkg.HasHash() {
		_, _ = fmt.Fprintf(out, "  SHA-256: %s\n", pkg.Hash)
	}
	return nil
}
