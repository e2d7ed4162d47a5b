package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/pakr/pkg/errutils"
)

const (
	// AppName is the name of the application used in paths
	AppName = "pakr"
)

// GetConfigDir returns the platform-specific configuration directory for the application.
// On Linux: ~/.config/pakr/
// On macOS: ~/Library/Application Support/pakr/
// On Windows: %AppData%\pakr\
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// SecureJoin joins name onto base and fails if the result escapes base.
// Archive entry names and script paths are untrusted and go through here.
func SecureJoin(base, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: absolute path %q", errutils.ErrInvalidPath, name)
	}
	cleanBase := filepath.Clean(base)
	joined := filepath.Join(cleanBase, name)
	rel, err := filepath.Rel(cleanBase, joined)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", errutils.ErrInvalidPath, name, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes %s", errutils.ErrInvalidPath, name, base)
	}
	return joined, nil
}

// CheckNoSymlinkDirs fails when a directory between base and target exists as a symlink.
// target itself is not inspected. Components that do not exist yet pass.
func CheckNoSymlinkDirs(base, target string) error {
	cleanBase := filepath.Clean(base)
	rel, err := filepath.Rel(cleanBase, filepath.Dir(target))
	if err != nil {
		return fmt.Errorf("%w: %q: %w", errutils.ErrInvalidPath, target, err)
	}
	if rel == "." {
		return nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes %s", errutils.ErrInvalidPath, target, base)
	}

	current := cleanBase
	for _, elem := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, elem)
		info, err := os.Lstat(current)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s is a symlink", errutils.ErrInvalidPath, current)
		}
	}
	return nil
}
