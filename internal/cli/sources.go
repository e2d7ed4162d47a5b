package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewSourcesCmd creates the sources command with its add subcommand.
func NewSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "View package sources",
		Long: `List the configured package sources in lookup order.

A source is a URL or a path to a JSON catalog of package descriptors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSources(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newSourcesAddCmd())

	return cmd
}

func newSourcesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add SOURCE",
		Short: "Add a package source",
		Long:  "Append a URL or catalog path to the sources file. Adding a known source does nothing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSourcesAdd(cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func runSources(out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sources, err := loadCatalog(cfg).LoadSources()
	if err != nil {
		return err
	}

	format := cfg.Settings.OutputFormat
	if isStructured(format) {
		return writeStructured(out, format, map[string][]string{"sources": sources})
	}

	if len(sources) == 0 {
		_, _ = fmt.Fprintln(out, "No sources configured.")
		return nil
	}
	for _, s := range sources {
		_, _ = fmt.Fprintln(out, s)
	}
	return nil
}

func runSourcesAdd(out io.Writer, source string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	added, err := loadCatalog(cfg).AddSource(source)
	if err != nil {
		return fmt.Errorf("failed to add source %s: %w", source, err)
	}
	if added {
		_, _ = fmt.Fprintf(out, "Successfully added source: %s\n", source)
	} else {
		_, _ = fmt.Fprintf(out, "Source %s already exists.\n", source)
	}
	return nil
}
