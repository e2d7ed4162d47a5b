// Package script runs the optional install script bundled with a package.
//
// A package opts in through package.json in its root:
//
//	{"install_script": {"script": "install.sh", "type": "bash"}}
//
// Running the script is best effort. A missing or incomplete descriptor, a
// missing script file and an unknown type are skipped with a diagnostic;
// a script that fails under every candidate interpreter is reported through
// a ScriptExecutionError that callers log without aborting the install.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/glorpus-work/pakr/internal/logger"
	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/fsutil"
	"github.com/glorpus-work/pakr/pkg/model"
)

// Outcome describes what happened to a package's install step.
type Outcome string

const (
	OutcomeRan     Outcome = "ran"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Result reports the install step of one package.
type Result struct {
	Outcome     Outcome
	Interpreter string
	Script      string
	Reason      string
}

// Runner locates and executes install scripts.
type Runner struct {
	interpreters map[model.ScriptType][]string
	executor     Executor
}

// NewRunner creates a Runner. interpreters lists, per script type, the binaries
// tried in order until one succeeds.
func NewRunner(interpreters map[model.ScriptType][]string, executor Executor) *Runner {
	return &Runner{interpreters: interpreters, executor: executor}
}

// Run executes the install script of the package rooted at packageRoot, if it declares one.
// The returned error is always a ScriptExecutionError and never means the package is broken.
func (r *Runner) Run(ctx context.Context, packageRoot, packageName string) (Result, error) {
	fields := logger.Fields{"package": packageName, "root": packageRoot}

	desc, reason := r.readDescriptor(packageRoot)
	if desc == nil {
		logger.Info("Skipping install script: "+reason, fields)
		return Result{Outcome: OutcomeSkipped, Reason: reason}, nil
	}
	fields["script"] = desc.Script
	fields["type"] = string(desc.Type)

	scriptPath, err := fsutil.SecureJoin(packageRoot, filepath.FromSlash(desc.Script))
	if err != nil {
		reason := "install script path leaves the package root"
		logger.Warn("Skipping install script: "+reason, fields)
		return Result{Outcome: OutcomeSkipped, Script: desc.Script, Reason: reason}, nil
	}
	if !fsutil.IsRegularFile(scriptPath) {
		reason := "install script not found"
		logger.Warn("Skipping install script: "+reason, fields)
		return Result{Outcome: OutcomeSkipped, Script: desc.Script, Reason: reason}, nil
	}

	if desc.Type == model.ScriptTypeTengo {
		return r.runTengoScript(ctx, scriptPath, packageRoot, packageName, fields)
	}

	candidates, ok := r.interpreters[desc.Type]
	if !ok || len(candidates) == 0 {
		reason := fmt.Sprintf("unsupported script type %q", desc.Type)
		logger.Warn("Skipping install script: "+reason, fields)
		return Result{Outcome: OutcomeSkipped, Script: desc.Script, Reason: reason}, nil
	}

	logger.Info("Running install script", fields)
	var errs []error
	last := candidates[len(candidates)-1]
	for _, interpreter := range candidates {
		err := r.executor.Run(ctx, interpreter, scriptPath)
		if err == nil {
			logger.Success("Install script finished", logger.Fields{"package": packageName, "interpreter": interpreter})
			return Result{Outcome: OutcomeRan, Interpreter: interpreter, Script: desc.Script}, nil
		}
		logger.Debug("Interpreter failed", logger.Fields{"package": packageName, "interpreter": interpreter, "error": err})
		errs = append(errs, fmt.Errorf("%s: %w", interpreter, err))
		// A script that exited has run; only a failure to start moves on to the next candidate.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) || ctx.Err() != nil {
			last = interpreter
			break
		}
	}

	scriptErr := errutils.NewScriptExecutionError(desc.Script, last, errors.Join(errs...))
	return Result{Outcome: OutcomeFailed, Interpreter: last, Script: desc.Script, Reason: scriptErr.Error()}, scriptErr
}

func (r *Runner) runTengoScript(ctx context.Context, scriptPath, packageRoot, packageName string, fields logger.Fields) (Result, error) {
	rel, _ := filepath.Rel(packageRoot, scriptPath)
	source, err := os.ReadFile(scriptPath)
	if err != nil {
		scriptErr := errutils.NewScriptExecutionError(rel, TengoInterpreter, err)
		return Result{Outcome: OutcomeFailed, Interpreter: TengoInterpreter, Script: rel, Reason: scriptErr.Error()}, scriptErr
	}

	logger.Info("Running install script", fields)
	if err := runTengo(ctx, source, packageName, packageRoot); err != nil {
		scriptErr := errutils.NewScriptExecutionError(rel, TengoInterpreter, err)
		return Result{Outcome: OutcomeFailed, Interpreter: TengoInterpreter, Script: rel, Reason: scriptErr.Error()}, scriptErr
	}
	logger.Success("Install script finished", logger.Fields{"package": packageName, "interpreter": TengoInterpreter})
	return Result{Outcome: OutcomeRan, Interpreter: TengoInterpreter, Script: rel}, nil
}

// readDescriptor loads the install_script entry of package.json. A nil
// descriptor comes with the reason no install step applies.
func (r *Runner) readDescriptor(packageRoot string) (*model.InstallScript, string) {
	data, err := os.ReadFile(filepath.Join(packageRoot, model.PackageMetadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, model.PackageMetadataFile + " not found"
		}
		return nil, fmt.Sprintf("cannot read %s: %v", model.PackageMetadataFile, err)
	}

	var meta model.PackageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Sprintf("cannot parse %s: %v", model.PackageMetadataFile, err)
	}
	if !meta.InstallScript.Complete() {
		return nil, "no install script declared"
	}
	return meta.InstallScript, ""
}
