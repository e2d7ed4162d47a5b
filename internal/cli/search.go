package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/glorpus-work/pakr/pkg/source"
	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search for packages",
		Long: `Search package names in every configured source.

Matching is a case-insensitive substring test. With --fuzzy, names are
ranked by how well they match the query's characters in order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd.OutOrStdout(), args[0], fuzzy)
		},
	}

	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "Rank names by fuzzy match instead of substring match")

	return cmd
}

type searchEntry struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string `json:"source" yaml:"source"`
}

func runSearch(ctx context.Context, out io.Writer, query string, fuzzy bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	matches, err := loadCatalog(cfg).Search(ctx, query, fuzzy)
	if err != nil {
		return fmt.Errorf("failed to search packages: %w", err)
	}

	format := cfg.Settings.OutputFormat
	if isStructured(format) {
		entries := make([]searchEntry, 0, len(matches))
		for _, m := range matches {
			entries = append(entries, searchEntry{
				Name:        m.Package.Name,
				Version:     m.Package.Version,
				Description: m.Package.Description,
				Source:      m.Source,
			})
		}
		return writeStructured(out, format, entries)
	}

	if len(matches) == 0 {
		_, _ = fmt.Fprintf(out, "No package found for query: %s\n", query)
		return nil
	}
	printMatches(out, matches)
	return nil
}

func printMatches(out io.Writer, matches []source.Match) {
	_, _ = fmt.Fprintf(out, "%-30s %-15s %s\n", "NAME", "VERSION", "DESCRIPTION")
	_, _ = fmt.Fprintln(out, strings.Repeat("-", SeparatorWidth))
	for _, m := range matches {
		version := m.Package.Version
		if version == "" {
			version = "N/A"
		}
		_, _ = fmt.Fprintf(out, "%-30s %-15s %s\n", m.Package.Name, version,
			truncate(m.Package.DisplayDescription(), MaxSearchDescriptionLength))
	}
}
