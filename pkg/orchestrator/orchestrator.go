// Package orchestrator sequences the installation pipeline:
//
//	fetching -> verifying -> extracting -> scripting -> committing -> done
//
// Fetching, verifying and extracting may fail, which ends the run in the
// failed phase with the store unchanged. Scripting always moves on to
// committing: a failed install script is reported in the result but the
// package is still recorded as installed.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glorpus-work/pakr/internal/logger"
	"github.com/glorpus-work/pakr/pkg/archive"
	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/installed"
	"github.com/glorpus-work/pakr/pkg/model"
)

// New constructs an Orchestrator from its collaborators. Helper for wiring.
func New(fetcher ArtifactFetcher, verifier DigestComputer, extractor ArchiveExtractor, scripts ScriptRunner,
	finder PackageFinder, store *installed.Store, workDir string, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		Fetcher:   fetcher,
		Verifier:  verifier,
		Extractor: extractor,
		Scripts:   scripts,
		Finder:    finder,
		Store:     store,
		WorkDir:   workDir,
		Hooks:     hooks,
	}
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now().UTC().Round(0)
}

// InstallByName looks name up in the sources and installs it.
// An installed package is reported as such without consulting the sources.
func (o *Orchestrator) InstallByName(ctx context.Context, name string) (InstallResult, error) {
	if o.Store == nil {
		return InstallResult{}, fmt.Errorf("installed package store is not configured")
	}
	if existing, ok := o.Store.Get(name); ok {
		return o.alreadyInstalled(existing), nil
	}
	if o.Finder == nil {
		return InstallResult{}, fmt.Errorf("package finder is not configured")
	}
	desc, err := o.Finder.Find(ctx, name)
	if err != nil {
		return InstallResult{}, err
	}
	return o.Install(ctx, desc)
}

// Install runs the pipeline for desc. Failures in fetching, verifying and
// extracting are returned as the corresponding errutils typed errors.
func (o *Orchestrator) Install(ctx context.Context, desc *model.PackageDescriptor) (InstallResult, error) {
	if err := o.validate(); err != nil {
		return InstallResult{}, err
	}
	if desc == nil || desc.Name == "" {
		return InstallResult{}, fmt.Errorf("package descriptor must have a name")
	}
	if existing, ok := o.Store.Get(desc.Name); ok {
		return o.alreadyInstalled(existing), nil
	}

	name := desc.Name
	fields := logger.Fields{"package": name, "version": desc.Version}

	emit(o.Hooks, Event{Phase: PhaseFetching, Package: name, Msg: desc.DownloadURL})
	artifact, err := o.fetch(ctx, desc)
	if err != nil {
		return InstallResult{}, o.fail(name, err)
	}
	fields["artifact"] = artifact

	emit(o.Hooks, Event{Phase: PhaseVerifying, Package: name, Msg: artifact})
	if err := o.verify(desc, artifact); err != nil {
		return InstallResult{}, o.fail(name, err)
	}

	emit(o.Hooks, Event{Phase: PhaseExtracting, Package: name, Msg: artifact})
	logger.Info("Extracting package", fields)
	root, err := o.Extractor.Extract(ctx, artifact)
	if err != nil {
		o.discardFailedExtraction(artifact, err)
		return InstallResult{}, o.fail(name, err)
	}

	emit(o.Hooks, Event{Phase: PhaseScripting, Package: name, Msg: root})
	result := InstallResult{Status: StatusInstalled}
	result.Script, result.ScriptErr = o.Scripts.Run(ctx, root, name)
	if result.ScriptErr != nil {
		logger.Warn("Install script failed, continuing with installation", logger.Fields{"package": name, "error": result.ScriptErr})
	}

	emit(o.Hooks, Event{Phase: PhaseCommitting, Package: name})
	result.CleanupErr = cleanup(artifact, root)
	if result.CleanupErr != nil {
		logger.Warn("Failed to clean up working files", logger.Fields{"package": name, "error": result.CleanupErr})
	}

	record := model.NewInstalledPackage(*desc, o.now())
	o.Store.Put(record)
	if err := o.Store.Persist(); err != nil {
		o.Store.Remove(name)
		return InstallResult{}, o.fail(name, err)
	}
	result.Record = record

	logger.Success("Package installed", fields)
	emit(o.Hooks, Event{Phase: PhaseDone, Package: name, Msg: string(StatusInstalled)})
	return result, nil
}

func (o *Orchestrator) validate() error {
	switch {
	case o.Store == nil:
		return fmt.Errorf("installed package store is not configured")
	case o.Fetcher == nil:
		return fmt.Errorf("artifact fetcher is not configured")
	case o.Verifier == nil:
		return fmt.Errorf("integrity verifier is not configured")
	case o.Extractor == nil:
		return fmt.Errorf("archive extractor is not configured")
	case o.Scripts == nil:
		return fmt.Errorf("install script runner is not configured")
	}
	return nil
}

func (o *Orchestrator) alreadyInstalled(existing *model.InstalledPackage) InstallResult {
	logger.Info("Package is already installed", logger.Fields{"package": existing.Name, "version": existing.Version})
	emit(o.Hooks, Event{Phase: PhaseDone, Package: existing.Name, Msg: string(StatusAlreadyInstalled)})
	return InstallResult{Status: StatusAlreadyInstalled, Record: existing}
}

func (o *Orchestrator) fail(name string, err error) error {
	logger.Error("Installation failed", logger.Fields{"package": name, "error": err})
	emit(o.Hooks, Event{Phase: PhaseFailed, Package: name, Msg: err.Error()})
	return err
}

func (o *Orchestrator) fetch(ctx context.Context, desc *model.PackageDescriptor) (string, error) {
	if strings.TrimSpace(desc.DownloadURL) == "" {
		return "", errutils.NewFetchError(desc.Name, fmt.Errorf("%w: package has no download URL", errutils.ErrInvalidDownloadURL))
	}
	artifact, err := o.Fetcher.Fetch(ctx, desc.DownloadURL, o.WorkDir)
	if err != nil {
		if !errors.Is(err, errutils.ErrFetch) {
			err = errutils.NewFetchError(desc.DownloadURL, err)
		}
		return "", err
	}
	return artifact, nil
}

// verify checks the artifact against the descriptor hash. Without a hash the
// check is skipped. On a mismatch the artifact stays on disk for inspection.
func (o *Orchestrator) verify(desc *model.PackageDescriptor, artifact string) error {
	if !desc.HasHash() {
		logger.Warn("No hash provided, skipping hash verification", logger.Fields{"package": desc.Name})
		return nil
	}
	actual, err := o.Verifier.Digest(artifact)
	if err != nil {
		return errutils.Wrapf(err, "failed to verify %s", artifact)
	}
	if actual != desc.Hash {
		logger.Warn("Hash mismatch, artifact kept for inspection", logger.Fields{"package": desc.Name, "path": artifact})
		return errutils.NewHashMismatchError(artifact, desc.Hash, actual)
	}
	logger.Debug("Hash verified", logger.Fields{"package": desc.Name, "hash": actual})
	return nil
}

// discardFailedExtraction removes the artifact and, when extraction started,
// whatever part of the package root it produced.
func (o *Orchestrator) discardFailedExtraction(artifact string, cause error) {
	targets := []func() error{func() error { return removeIfExists(os.Remove, artifact) }}
	if errors.Is(cause, errutils.ErrExtraction) {
		root := archive.RootDir(o.WorkDir, artifact)
		targets = append(targets, func() error { return removeIfExists(os.RemoveAll, root) })
	}
	var errs []error
	for _, remove := range targets {
		errs = append(errs, remove())
	}
	if err := errors.Join(errs...); err != nil {
		logger.Warn("Failed to clean up after extraction failure", logger.Fields{"artifact": artifact, "error": err})
	}
}

// cleanup removes the artifact and the package root. Both removals are
// attempted; their failures are joined.
func cleanup(artifact, root string) error {
	return errors.Join(
		removeIfExists(os.Remove, artifact),
		removeIfExists(os.RemoveAll, root),
	)
}

func removeIfExists(remove func(string) error, path string) error {
	if err := remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// Uninstall removes name from the store and reports whether it was installed.
func (o *Orchestrator) Uninstall(name string) (bool, error) {
	if o.Store == nil {
		return false, fmt.Errorf("installed package store is not configured")
	}
	previous, ok := o.Store.Get(name)
	if !ok {
		logger.Info("Package is not installed", logger.Fields{"package": name})
		return false, nil
	}
	o.Store.Remove(name)
	if err := o.Store.Persist(); err != nil {
		o.Store.Put(previous)
		return false, err
	}
	logger.Success("Package uninstalled", logger.Fields{"package": name, "version": previous.Version})
	return true, nil
}

// Update replaces an installed package with the descriptor the sources publish now.
// The sources are consulted before anything is removed, so a package no source
// publishes keeps its record. If the reinstall fails the previous record is
// restored; the uninstall step only removes the record, so nothing is lost on disk.
func (o *Orchestrator) Update(ctx context.Context, name string) (UpdateResult, error) {
	if o.Store == nil {
		return UpdateResult{}, fmt.Errorf("installed package store is not configured")
	}
	previous, ok := o.Store.Get(name)
	if !ok {
		return UpdateResult{}, errutils.ErrNotInstalledWithName(name)
	}
	if o.Finder == nil {
		return UpdateResult{}, fmt.Errorf("package finder is not configured")
	}

	desc, err := o.Finder.Find(ctx, name)
	if err != nil {
		return UpdateResult{Previous: previous}, err
	}

	result := UpdateResult{
		Previous:   previous,
		Transition: model.CompareVersions(previous.Version, desc.Version),
	}
	logger.Info("Updating package", logger.Fields{
		"package":    name,
		"from":       previous.Version,
		"to":         desc.Version,
		"transition": string(result.Transition),
	})

	if _, err := o.Uninstall(name); err != nil {
		return result, err
	}

	result.Install, err = o.Install(ctx, desc)
	if err != nil {
		o.Store.Put(previous)
		if perr := o.Store.Persist(); perr != nil {
			return result, errors.Join(err, fmt.Errorf("failed to restore previous record of %s: %w", name, perr))
		}
		logger.Warn("Update failed, previous record restored", logger.Fields{"package": name, "version": previous.Version})
		return result, err
	}
	return result, nil
}
