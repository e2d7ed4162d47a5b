// Package archive unpacks package artifacts into a working directory and builds
// new artifacts from a directory tree.
//
// The format is chosen by the artifact's final extension: ".gz" is a gzip
// compressed tar stream and ".zip" is a zip archive. Anything else is rejected
// with an UnsupportedFormatError.
package archive

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/pakr/internal/logger"
	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/fsutil"
	"github.com/mholt/archives"
)

// Format is one supported artifact encoding.
type Format struct {
	Extension string
	Extractor archives.Extractor
	Archiver  archives.Archiver
}

var tarGz = archives.CompressedArchive{
	Compression: archives.Gz{},
	Archival:    archives.Tar{},
	Extraction:  archives.Tar{},
}

// Formats lists the supported encodings keyed by file extension.
var Formats = map[string]Format{
	".gz":  {Extension: ".gz", Extractor: tarGz, Archiver: tarGz},
	".zip": {Extension: ".zip", Extractor: archives.Zip{}, Archiver: archives.Zip{}},
}

// FormatFor returns the format handling path, or an UnsupportedFormatError.
func FormatFor(p string) (Format, error) {
	ext := filepath.Ext(p)
	format, ok := Formats[ext]
	if !ok {
		return Format{}, errutils.NewUnsupportedFormatError(p, ext)
	}
	return format, nil
}

// RootName returns the package root directory name for an artifact: its base
// name with the final extension stripped, so "foo.zip" gives "foo" and
// "foo.tar.gz" gives "foo.tar".
func RootName(artifactPath string) string {
	base := filepath.Base(artifactPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RootDir returns where the package root of artifactPath lands when extracted into workDir.
func RootDir(workDir, artifactPath string) string {
	return filepath.Join(workDir, RootName(artifactPath))
}

// Manager handles archive extraction and creation operations.
type Manager struct {
	workDir string
}

// NewManager creates a Manager that extracts into workDir.
func NewManager(workDir string) *Manager {
	return &Manager{workDir: workDir}
}

// Extract unpacks the artifact into the working directory and returns the package root.
// The root is derived from the artifact name with RootDir; the archive is not scanned for it.
func (am *Manager) Extract(ctx context.Context, artifactPath string) (string, error) {
	format, err := FormatFor(artifactPath)
	if err != nil {
		return "", err
	}

	file, err := os.Open(artifactPath)
	if err != nil {
		return "", errutils.NewExtractionError(artifactPath, err)
	}
	defer func() { _ = file.Close() }()

	if err := fsutil.EnsureDir(am.workDir); err != nil {
		return "", errutils.NewExtractionError(artifactPath, err)
	}

	handler := func(ctx context.Context, f archives.FileInfo) error {
		return am.extractEntry(f)
	}
	if err := format.Extractor.Extract(ctx, file, handler); err != nil {
		return "", errutils.NewExtractionError(artifactPath, err)
	}

	root := RootDir(am.workDir, artifactPath)
	logger.Debug("Extracted artifact", logger.Fields{"artifact": artifactPath, "root": root})
	return root, nil
}

// extractEntry writes a single archive entry below the working directory.
func (am *Manager) extractEntry(f archives.FileInfo) error {
	name := strings.TrimPrefix(path.Clean("/"+f.NameInArchive), "/")
	if name == "" {
		return nil
	}

	targetPath, err := fsutil.SecureJoin(am.workDir, filepath.FromSlash(f.NameInArchive))
	if err != nil {
		return err
	}
	if err := fsutil.CheckNoSymlinkDirs(am.workDir, targetPath); err != nil {
		return fmt.Errorf("entry %s: %w", f.NameInArchive, err)
	}
	// An earlier symlink entry at the same path is replaced, never written through.
	if info, err := os.Lstat(targetPath); err == nil && info.Mode()&fs.ModeSymlink != 0 {
		if err := os.Remove(targetPath); err != nil {
			return fmt.Errorf("failed to replace symlink %s: %w", targetPath, err)
		}
	}

	if hdr, ok := f.Header.(*tar.Header); ok && hdr.Typeflag == tar.TypeLink {
		return am.writeHardLink(hdr.Linkname, targetPath)
	}

	switch {
	case f.IsDir():
		return writeDirectory(targetPath, f.Mode())
	case f.Mode()&fs.ModeSymlink != 0:
		return am.writeSymlink(f, targetPath)
	case f.Mode().IsRegular():
		return writeRegularFile(f, targetPath)
	default:
		logger.Debug("Skipping special archive entry", logger.Fields{"entry": f.NameInArchive, "mode": f.Mode().String()})
		return nil
	}
}

func writeDirectory(targetPath string, mode fs.FileMode) error {
	if err := os.MkdirAll(targetPath, fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", targetPath, err)
	}
	// Owner access is kept so the tree can be populated and removed again.
	if err := os.Chmod(targetPath, mode.Perm()|0o700); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", targetPath, err)
	}
	return nil
}

// writeSymlink recreates a symlink whose target must stay inside the working directory.
func (am *Manager) writeSymlink(f archives.FileInfo, targetPath string) error {
	linkTarget := f.LinkTarget
	if linkTarget == "" {
		data, err := readEntry(f)
		if err != nil {
			return fmt.Errorf("failed to read symlink %s: %w", f.NameInArchive, err)
		}
		linkTarget = string(data)
	}

	if filepath.IsAbs(linkTarget) {
		return fmt.Errorf("%w: symlink %s points to absolute path %s", errutils.ErrInvalidPath, f.NameInArchive, linkTarget)
	}
	if err := am.checkLinkTarget(filepath.Dir(targetPath), linkTarget); err != nil {
		return fmt.Errorf("symlink %s -> %s: %w", f.NameInArchive, linkTarget, err)
	}

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for symlink %s: %w", targetPath, err)
	}
	_ = os.Remove(targetPath)
	return os.Symlink(linkTarget, targetPath)
}

// checkLinkTarget walks linkTarget from dir one element at a time. Every step must stay
// inside the working directory and must not pass through an existing symlink.
func (am *Manager) checkLinkTarget(dir, linkTarget string) error {
	current := dir
	for _, elem := range strings.Split(filepath.ToSlash(linkTarget), "/") {
		switch elem {
		case "", ".":
			continue
		case "..":
			current = filepath.Dir(current)
		default:
			current = filepath.Join(current, elem)
		}
		rel, err := filepath.Rel(am.workDir, current)
		if err != nil {
			return fmt.Errorf("%w: %w", errutils.ErrInvalidPath, err)
		}
		if _, err := fsutil.SecureJoin(am.workDir, rel); err != nil {
			return err
		}
		if elem == ".." {
			continue
		}
		if info, err := os.Lstat(current); err == nil && info.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s is a symlink", errutils.ErrInvalidPath, current)
		}
	}
	return nil
}

func (am *Manager) writeHardLink(linkName, targetPath string) error {
	source, err := fsutil.SecureJoin(am.workDir, filepath.FromSlash(linkName))
	if err != nil {
		return fmt.Errorf("hard link %s: %w", linkName, err)
	}
	if err := fsutil.CheckNoSymlinkDirs(am.workDir, source); err != nil {
		return fmt.Errorf("hard link %s: %w", linkName, err)
	}
	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", targetPath, err)
	}
	_ = os.Remove(targetPath)
	return os.Link(source, targetPath)
}

func writeRegularFile(f archives.FileInfo, targetPath string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", f.NameInArchive, err)
	}
	defer func() { _ = src.Close() }()

	if err := fsutil.EnsureFileDir(targetPath); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", targetPath, err)
	}

	dst, err := fsutil.CreateFilePerm(targetPath, fsutil.FileModeDefault)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to write %s: %w", targetPath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", targetPath, err)
	}

	if err := os.Chmod(targetPath, f.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions for %s: %w", targetPath, err)
	}
	if !f.ModTime().IsZero() {
		_ = os.Chtimes(targetPath, f.ModTime(), f.ModTime())
	}
	return nil
}

func readEntry(f archives.FileInfo) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
