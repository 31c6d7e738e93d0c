package bootstrap

import (
	"context"
	"errors"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// Outcome classifies a customization script run. It is consumed for
// logging only; no outcome aborts the remaining stages.
type Outcome int

const (
	// OutcomeSkipped means the pipeline never ran (readiness not granted).
	OutcomeSkipped Outcome = iota

	// OutcomeSucceeded means the script ran and exited zero.
	OutcomeSucceeded

	// OutcomeFailed means acquisition or the script itself failed.
	OutcomeFailed
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Downloader fetches every object under the source path into dir.
// Implemented by the storage client.
type Downloader interface {
	Download(ctx context.Context, source, dir string) error
}

// Runner executes the entry script and reports its exit code. The
// returned error covers only failures to run the script at all; a
// nonzero exit is not an error.
type Runner interface {
	Run(ctx context.Context, script string) (int, error)
}

// ScriptPipeline downloads the customization bundle and runs its entry
// script, classifying the result. Run is attempted at most once.
type ScriptPipeline struct {
	Source      string // object storage path, e.g. gs://bucket/run-1/sources
	WorkDir     string
	EntryScript string

	Downloader Downloader
	Runner     Runner
	Logf       func(string, ...any)
}

// Run executes the pipeline and returns the classified outcome. It has
// no error return: every failure is logged as a build marker and
// absorbed here, so the orchestrator always continues to cleanup and
// shutdown.
func (p *ScriptPipeline) Run(ctx context.Context) Outcome {
	if err := p.Downloader.Download(ctx, p.Source, p.WorkDir); err != nil {
		logf(p.Logf, "download error: %v", err)
		logf(p.Logf, "BuildFailed: failed to download scripts from %s.", p.Source)
		return OutcomeFailed
	}

	entry := filepath.Join(p.WorkDir, p.EntryScript)
	exitCode, err := p.Runner.Run(ctx, entry)
	if err != nil {
		logf(p.Logf, "BuildFailed: could not execute the customization script %s: %v.", entry, err)
		return OutcomeFailed
	}

	if exitCode != 0 {
		logf(p.Logf, "BuildFailed: customization script exited with code %d, please check the customization script.", exitCode)
		return OutcomeFailed
	}

	logf(p.Logf, "BuildSucceeded: customization script completed successfully.")
	return OutcomeSucceeded
}

// ShellRunner runs the entry script under bash with tracing enabled,
// streaming its output to the serial console.
type ShellRunner struct {
	// Dir is the working directory for the script, normally the bundle
	// directory so relative paths inside the bundle resolve.
	Dir string
}

// Run blocks until the script terminates and returns its exit code.
func (r *ShellRunner) Run(ctx context.Context, script string) (int, error) {
	cmd := exec.CommandContext(ctx, "bash", "-x", script)
	cmd.Dir = r.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return -1, err
}

// logf writes through the stage's logger, defaulting to the standard
// logger when none was wired.
func logf(f func(string, ...any), format string, args ...any) {
	if f == nil {
		f = log.Printf
	}
	f(format, args...)
}
