package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/pakr/pkg/fsutil"
	"github.com/mholt/archives"
)

// Create builds an artifact at archivePath from the contents of sourceDir.
// The contents are stored below a top-level directory named RootName(archivePath),
// which is exactly the package root Extract reports for the result.
func (am *Manager) Create(ctx context.Context, sourceDir, archivePath string) (err error) {
	format, err := FormatFor(archivePath)
	if err != nil {
		return err
	}

	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for source directory: %w", err)
	}
	info, err := os.Stat(absolutePath)
	if err != nil {
		return fmt.Errorf("failed to stat source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", sourceDir)
	}

	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): RootName(archivePath),
	})
	if err != nil {
		return fmt.Errorf("failed to read files from disk: %w", err)
	}

	if err := fsutil.EnsureFileDir(archivePath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", archivePath, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", archivePath, cerr)
		}
		if err != nil {
			_ = os.Remove(archivePath)
		}
	}()

	if err := format.Archiver.Archive(ctx, file, files); err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	return file.Sync()
}
