package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/glorpus-work/pakr/pkg/model"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var nameFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Long: `List all installed packages from the installed package records.

Use --name to filter packages by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.OutOrStdout(), nameFilter)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Filter packages by name (partial match)")

	return cmd
}

func runList(out io.Writer, nameFilter string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to load installed packages: %w", err)
	}
	defer closeStore(store)

	packages := filterByName(store.All(), nameFilter)

	format := cfg.Settings.OutputFormat
	if isStructured(format) {
		return writeStructured(out, format, packages)
	}

	if len(packages) == 0 {
		_, _ = fmt.Fprintln(out, "No packages are currently installed.")
		return nil
	}

	_, _ = fmt.Fprintf(out, "%-30s %-15s %s\n", "PACKAGE NAME", "VERSION", "INSTALLED")
	_, _ = fmt.Fprintln(out, strings.Repeat("-", SeparatorWidth))
	for _, pkg := range packages {
		_, _ = fmt.Fprintf(out, "%-30s %-15s %s\n", pkg.Name, pkg.Version, formatDate(pkg.InstallDate))
	}
	return nil
}

func filterByName(packages []*model.InstalledPackage, filter string) []*model.InstalledPackage {
	if filter == "" {
		return packages
	}
	needle := strings.ToLower(filter)
	filtered := make([]*model.InstalledPackage, 0, len(packages))
	for _, pkg := range packages {
		if strings.Contains(strings.ToLower(pkg.Name), needle) {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}
