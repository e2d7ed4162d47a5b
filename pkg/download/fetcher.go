// Package download materializes package artifacts as local files, either by
// copying a local path or by streaming an HTTP(S) response to disk.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/pakr/internal/logger"
	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/fsutil"
)

// ChunkSize is the buffer size used when streaming an artifact to disk.
const ChunkSize = 8192

// Fetcher obtains artifacts from local paths or HTTP(S) URLs.
// There is no retry: a single attempt is made and its error is returned.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher. A zero timeout waits indefinitely.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = "pakr/dev"
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch places the artifact named by source into destDir and returns its path.
// An existing local file is copied under its base name; anything else must be
// an http or https URL and is saved under the last segment of its path.
// Data is written to a temporary file and renamed on completion, so a failed
// fetch never leaves a partial artifact behind.
func (f *Fetcher) Fetch(ctx context.Context, source, destDir string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", errutils.NewFetchError(source, errutils.ErrInvalidDownloadURL)
	}
	if err := fsutil.EnsureDir(destDir); err != nil {
		return "", errutils.NewFetchError(source, errutils.Wrap(err, "could not create destination directory"))
	}

	if fsutil.IsRegularFile(source) {
		return f.copyLocal(source, destDir)
	}

	u, err := parseDownloadURL(source)
	if err != nil {
		return "", errutils.NewFetchError(source, err)
	}
	return f.download(ctx, u, destDir)
}

func parseDownloadURL(source string) (*url.URL, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errutils.ErrInvalidDownloadURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s is neither an existing file nor an http(s) URL", errutils.ErrInvalidDownloadURL, source)
	}
	return u, nil
}

// FileNameFromURL returns the last path segment of u, the name the artifact is saved under.
func FileNameFromURL(u *url.URL) (string, error) {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("%w: %s has no file name", errutils.ErrInvalidDownloadURL, u.Redacted())
	}
	return name, nil
}

func (f *Fetcher) copyLocal(source, destDir string) (string, error) {
	dest := filepath.Join(destDir, filepath.Base(source))
	if fsutil.SameFile(source, dest) {
		logger.Debug("Artifact already in place", logger.Fields{"path": dest})
		return dest, nil
	}

	src, err := os.Open(source)
	if err != nil {
		return "", errutils.NewFetchError(source, err)
	}
	defer func() { _ = src.Close() }()

	logger.Debug("Copying local artifact", logger.Fields{"source": source, "destination": dest})
	if err := writeAtomically(src, dest); err != nil {
		return "", errutils.NewFetchError(source, err)
	}
	return dest, nil
}

func (f *Fetcher) download(ctx context.Context, u *url.URL, destDir string) (string, error) {
	name, err := FileNameFromURL(u)
	if err != nil {
		return "", errutils.NewFetchError(u.Redacted(), err)
	}
	dest := filepath.Join(destDir, name)

	resp, err := f.doRequest(ctx, u)
	if err != nil {
		return "", errutils.NewFetchError(u.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug("Downloading artifact", logger.Fields{"url": u.Redacted(), "destination": dest})
	if err := writeAtomically(resp.Body, dest); err != nil {
		return "", errutils.NewFetchError(u.Redacted(), err)
	}
	return dest, nil
}

// Get performs a GET request and returns the full body. Sources use it to read remote catalogs.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := parseDownloadURL(rawURL)
	if err != nil {
		return nil, errutils.NewFetchError(rawURL, err)
	}
	resp, err := f.doRequest(ctx, u)
	if err != nil {
		return nil, errutils.NewFetchError(u.Redacted(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errutils.NewFetchError(u.Redacted(), errutils.Wrap(err, "could not read response body"))
	}
	return data, nil
}

func (f *Fetcher) doRequest(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", f.userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errutils.Wrap(err, "request failed")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp, nil
}

// writeAtomically streams r into a temporary file next to dest and renames it into place.
func writeAtomically(r io.Reader, dest string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "dl-*.tmp")
	if err != nil {
		return errutils.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(struct{ io.Writer }{tmp}, onlyReader{r}, buf); err != nil {
		_ = tmp.Close()
		return errutils.Wrap(err, "could not write file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errutils.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		return errutils.Wrap(err, "could not close file")
	}
	if err := os.Chmod(tmpPath, fsutil.FileModeDefault); err != nil {
		return errutils.Wrap(err, "could not set permissions")
	}
	if err := fsutil.Move(tmpPath, dest); err != nil {
		return errutils.Wrap(err, "could not finalize file")
	}
	return nil
}

// onlyReader hides WriterTo so io.CopyBuffer streams in ChunkSize pieces.
type onlyReader struct {
	io.Reader
}
