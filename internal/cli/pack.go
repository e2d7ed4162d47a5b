package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/glorpus-work/pakr/pkg/archive"
	"github.com/glorpus-work/pakr/pkg/integrity"
	"github.com/glorpus-work/pakr/pkg/model"
	"github.com/spf13/cobra"
)

// Number of arguments expected by the pack command.
const packCommandArgs = 2

// NewPackCmd creates the pack command.
func NewPackCmd() *cobra.Command {
	var (
		name        string
		version     string
		downloadURL string
		description string
	)

	cmd := &cobra.Command{
		Use:   "pack DIR OUTPUT",
		Short: "Build a package artifact",
		Long: `Archive the contents of DIR into OUTPUT, a .tar.gz or .zip artifact.

The contents are placed below a top-level directory named after OUTPUT,
which is where installation looks for package.json. With --name, a
catalog entry for the artifact is printed as well.`,
		Args: cobra.ExactArgs(packCommandArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := model.PackageDescriptor{Name: name, Version: version, DownloadURL: downloadURL, Description: description}
			return runPack(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], desc)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Package name for the printed catalog entry")
	cmd.Flags().StringVar(&version, "version", "", "Package version for the printed catalog entry")
	cmd.Flags().StringVar(&downloadURL, "url", "", "Download URL for the printed catalog entry (default: OUTPUT)")
	cmd.Flags().StringVar(&description, "description", "", "Description for the printed catalog entry")

	return cmd
}

func runPack(ctx context.Context, out io.Writer, dir, output string, desc model.PackageDescriptor) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := archive.NewManager(cfg.Settings.WorkDir).Create(ctx, dir, output); err != nil {
		return fmt.Errorf("failed to pack %s: %w", dir, err)
	}
	hash, err := integrity.NewVerifier().Digest(output)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", output, err)
	}

	desc.Hash = hash
	if desc.DownloadURL == "" {
		desc.DownloadURL = output
	}

	format := cfg.Settings.OutputFormat
	if isStructured(format) {
		return writeStructured(out, format, map[string]string{"path": output, "hash": hash})
	}

	_, _ = fmt.Fprintf(out, "Created %s\n", output)
	_, _ = fmt.Fprintf(out, "SHA-256: %s\n", hash)
	if desc.Name != "" {
		_, _ = fmt.Fprintln(out)
		return writeStructured(out, FormatJSON, desc)
	}
	return nil
}
