//go:generate mockgen -destination=./mocks/orchestrator.go . ArtifactFetcher,DigestComputer,ArchiveExtractor,ScriptRunner,PackageFinder

package orchestrator

import (
	"context"
	"time"

	"github.com/glorpus-work/pakr/pkg/installed"
	"github.com/glorpus-work/pakr/pkg/model"
	"github.com/glorpus-work/pakr/pkg/script"
)

// ArtifactFetcher materializes a package artifact in a directory.
type ArtifactFetcher interface {
	Fetch(ctx context.Context, source, destDir string) (string, error)
}

// DigestComputer hashes an artifact.
type DigestComputer interface {
	Digest(path string) (string, error)
}

// ArchiveExtractor unpacks an artifact and returns its package root.
type ArchiveExtractor interface {
	Extract(ctx context.Context, artifactPath string) (string, error)
}

// ScriptRunner runs the optional install script of an extracted package.
type ScriptRunner interface {
	Run(ctx context.Context, packageRoot, packageName string) (script.Result, error)
}

// PackageFinder looks up the current descriptor of a package in the configured sources.
type PackageFinder interface {
	Find(ctx context.Context, name string) (*model.PackageDescriptor, error)
}

// Orchestrator drives the installation pipeline of one package at a time.
type Orchestrator struct {
	Fetcher   ArtifactFetcher
	Verifier  DigestComputer
	Extractor ArchiveExtractor
	Scripts   ScriptRunner
	Finder    PackageFinder
	Store     *installed.Store
	WorkDir   string // where artifacts are fetched and extracted
	Hooks     Hooks  // Hooks for progress and event notifications

	// Now stamps install dates; the current UTC time when nil.
	Now func() time.Time
}

// Phase names the pipeline state an Event reports.
type Phase string

const (
	PhaseFetching   Phase = "fetching"
	PhaseVerifying  Phase = "verifying"
	PhaseExtracting Phase = "extracting"
	PhaseScripting  Phase = "scripting"
	PhaseCommitting Phase = "committing"
	PhaseDone       Phase = "done"
	PhaseFailed     Phase = "failed"
)

// Event represents a simple progress notification.
type Event struct {
	Phase   Phase
	Package string
	Msg     string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// InstallStatus tells whether Install ran the pipeline.
type InstallStatus string

const (
	StatusInstalled        InstallStatus = "installed"
	StatusAlreadyInstalled InstallStatus = "already-installed"
)

// InstallResult describes a completed Install.
type InstallResult struct {
	Status InstallStatus
	// Record is the committed record, or the existing one when already installed.
	Record *model.InstalledPackage
	Script script.Result
	// ScriptErr is set when the install script failed. The package is installed regardless.
	ScriptErr error
	// CleanupErr collects failures to remove the artifact or the package root.
	CleanupErr error
}

// UpdateResult describes a completed Update.
type UpdateResult struct {
	Previous   *model.InstalledPackage
	Install    InstallResult
	Transition model.Transition
}
