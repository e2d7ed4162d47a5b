// Package errutils provides the error taxonomy of the pakr package manager.
// It defines sentinel errors for every failure class, typed errors that carry
// context for the installation pipeline stages, and small wrapping helpers.
//
// Callers classify failures with errors.Is against the sentinels, or extract
// details with errors.As against the typed errors:
//
//	var mismatch *errutils.HashMismatchError
//	if errors.As(err, &mismatch) {
//	    fmt.Println("artifact kept at", mismatch.Path)
//	}
package errutils

import (
	"fmt"
)

// Pipeline errors. Every typed error in this package matches exactly one of these.
var (
	// ErrFetch is returned when an artifact cannot be copied or downloaded.
	ErrFetch = fmt.Errorf("fetch failed")

	// ErrInvalidDownloadURL is returned when a descriptor carries no usable download URL.
	ErrInvalidDownloadURL = fmt.Errorf("invalid download URL")

	// ErrHashMismatch is returned when the artifact digest differs from the expected one.
	ErrHashMismatch = fmt.Errorf("hash mismatch")

	// ErrUnsupportedFormat is returned for artifacts whose extension has no extractor.
	ErrUnsupportedFormat = fmt.Errorf("unsupported archive format")

	// ErrExtraction is returned for corrupt, truncated or malicious archives.
	ErrExtraction = fmt.Errorf("extraction failed")

	// ErrScriptExecution is reported (never returned from an install) when an install script fails.
	ErrScriptExecution = fmt.Errorf("install script failed")
)

// Store and catalog errors.
var (
	// ErrPackageNotFound is returned when no configured source publishes a package.
	ErrPackageNotFound = fmt.Errorf("package not found")

	// ErrNotInstalled is returned when an operation needs an installed package that is absent.
	ErrNotInstalled = fmt.Errorf("package not installed")

	// ErrInvalidPath is returned when a file or directory path is invalid.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// ErrEmptyPaths is returned when source or destination paths are empty in file operations.
	ErrEmptyPaths = fmt.Errorf("source and destination paths cannot be empty")

	// ErrStateCorrupt is returned when the installed-state file cannot be decoded.
	ErrStateCorrupt = fmt.Errorf("installed state is corrupt")

	// ErrSourcesFile is returned when the sources file cannot be read or written.
	ErrSourcesFile = fmt.Errorf("sources file error")
)

// Config errors are related to configuration file operations and validation.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")
	ErrInvalidConfigKey  = fmt.Errorf("invalid configuration value")

	// ErrHTTPTimeoutNegative is returned when HTTP timeout is set to a negative value.
	ErrHTTPTimeoutNegative = fmt.Errorf("http_timeout cannot be negative")

	// ErrInvalidOutputFormat is returned when an invalid output format is specified.
	ErrInvalidOutputFormat = fmt.Errorf("invalid output format")

	// ErrMaxConcurrentInvalid is returned when max_concurrent_loads is below one.
	ErrMaxConcurrentInvalid = fmt.Errorf("max_concurrent_loads must be at least 1")

	// ErrInvalidLogFormat is returned when log_format is neither text nor json.
	ErrInvalidLogFormat = fmt.Errorf("invalid log format")

	// ErrInvalidLogLevel is returned when an invalid log level is specified.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")

	// ErrInvalidStateBackend is returned when the configured state backend is unknown.
	ErrInvalidStateBackend = fmt.Errorf("invalid state backend")

	// ErrNoInterpreters is returned when a script type is configured with no candidate binaries.
	ErrNoInterpreters = fmt.Errorf("no interpreters configured")
)

// Wrap wraps an error with additional context.
// If the error is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
// If the error is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidOutputFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: table, json, yaml", ErrInvalidOutputFormat, format)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}

// ErrInvalidStateBackendWithDetails is a helper to create a wrapped error with the invalid backend.
func ErrInvalidStateBackendWithDetails(backend string) error {
	return fmt.Errorf("%w: '%s', must be one of: json, sqlite", ErrInvalidStateBackend, backend)
}

// ErrPackageNotFoundWithName creates an error for a package no source publishes.
func ErrPackageNotFoundWithName(name string) error {
	return fmt.Errorf("%w: %s", ErrPackageNotFound, name)
}

// ErrNotInstalledWithName creates an error for a package missing from the installed state.
func ErrNotInstalledWithName(name string) error {
	return fmt.Errorf("%w: %s", ErrNotInstalled, name)
}
