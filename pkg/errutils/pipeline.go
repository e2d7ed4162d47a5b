package errutils

import (
	"fmt"
)

// Error types for the installation pipeline stages.
type (
	// FetchError is returned when an artifact cannot be obtained.
	FetchError struct {
		Source string
		Err    error
	}

	// HashMismatchError is returned when an artifact fails integrity verification.
	// The artifact is left on disk at Path.
	HashMismatchError struct {
		Path     string
		Expected string
		Actual   string
	}

	// UnsupportedFormatError is returned when no extractor handles the artifact extension.
	UnsupportedFormatError struct {
		Path      string
		Extension string
	}

	// ExtractionError is returned when an archive cannot be unpacked.
	ExtractionError struct {
		Path string
		Err  error
	}

	// ScriptExecutionError describes a failed install script. It is reported, never fatal.
	ScriptExecutionError struct {
		Script      string
		Interpreter string
		Err         error
	}
)

// NewFetchError creates a new FetchError.
func NewFetchError(source string, err error) error {
	return &FetchError{Source: source, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error for FetchError.
func (e *FetchError) Unwrap() error { return e.Err }

// Is reports ErrFetch as the class of every FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// NewHashMismatchError creates a new HashMismatchError.
func NewHashMismatchError(path, expected, actual string) error {
	return &HashMismatchError{Path: path, Expected: expected, Actual: actual}
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("hash mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// Is reports ErrHashMismatch as the class of every HashMismatchError.
func (e *HashMismatchError) Is(target error) bool { return target == ErrHashMismatch }

// NewUnsupportedFormatError creates a new UnsupportedFormatError.
func NewUnsupportedFormatError(path, ext string) error {
	return &UnsupportedFormatError{Path: path, Extension: ext}
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported archive format for %s: no extension", e.Path)
	}
	return fmt.Sprintf("unsupported archive format %q for %s", e.Extension, e.Path)
}

// Is reports ErrUnsupportedFormat as the class of every UnsupportedFormatError.
func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(path string, err error) error {
	return &ExtractionError{Path: path, Err: err}
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for ExtractionError.
func (e *ExtractionError) Unwrap() error { return e.Err }

// Is reports ErrExtraction as the class of every ExtractionError.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// NewScriptExecutionError creates a new ScriptExecutionError.
func NewScriptExecutionError(script, interpreter string, err error) error {
	return &ScriptExecutionError{Script: script, Interpreter: interpreter, Err: err}
}

func (e *ScriptExecutionError) Error() string {
	if e.Interpreter == "" {
		return fmt.Sprintf("install script %s failed: %v", e.Script, e.Err)
	}
	return fmt.Sprintf("install script %s failed under %s: %v", e.Script, e.Interpreter, e.Err)
}

// Unwrap returns the underlying error for ScriptExecutionError.
func (e *ScriptExecutionError) Unwrap() error { return e.Err }

// Is reports ErrScriptExecution as the class of every ScriptExecutionError.
func (e *ScriptExecutionError) Is(target error) bool { return target == ErrScriptExecution }
