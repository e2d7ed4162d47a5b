package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/integrity"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify FILE [HASH]",
		Short: "Print or check the SHA-256 digest of a file",
		Long: `Print the lowercase hex SHA-256 digest of FILE.

With HASH, the digest must equal it exactly or the command fails. The
comparison is case-sensitive, as it is during installation.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected := ""
			if len(args) > 1 {
				expected = args[1]
			}
			return runVerify(cmd.OutOrStdout(), args[0], expected)
		},
	}

	return cmd
}

func runVerify(out io.Writer, path, expected string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	actual, err := integrity.NewVerifier().Digest(path)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", path, err)
	}

	if strings.TrimSpace(expected) == "" {
		_, _ = fmt.Fprintf(out, "%s  %s\n", actual, path)
		return nil
	}
	if actual != expected {
		return errutils.NewHashMismatchError(path, expected, actual)
	}
	_, _ = fmt.Fprintf(out, "%s: OK\n", path)
	return nil
}
