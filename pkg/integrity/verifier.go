// Package integrity computes and checks SHA-256 digests of downloaded artifacts.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/glorpus-work/pakr/pkg/errutils"
)

// BlockSize is the size of the chunks fed to the hash, so memory use does not grow with the file.
const BlockSize = 4096

// Verifier computes and compares artifact digests.
type Verifier struct{}

// NewVerifier creates a new Verifier instance.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Digest returns the lowercase hex SHA-256 digest of the file at path.
func (v *Verifier) Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errutils.Wrapf(err, "open %s for hashing", path)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	buf := make([]byte, BlockSize)
	if _, err := io.CopyBuffer(h, onlyReader{f}, buf); err != nil {
		return "", errutils.Wrapf(err, "hashing %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify reports whether the digest of path equals expected.
// The comparison is byte-exact and case-sensitive.
func (v *Verifier) Verify(path, expected string) (bool, error) {
	actual, err := v.Digest(path)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}

// onlyReader hides WriterTo/ReaderFrom so io.CopyBuffer really uses the fixed buffer.
type onlyReader struct {
	io.Reader
}
