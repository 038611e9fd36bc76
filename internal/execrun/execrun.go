// Package execrun runs external programs synchronously and reports their
// exit status.
//
// A non-zero exit status from the child is a normal, reportable outcome
// here, not an error: callers branch on Result.ExitCode. The error return
// is reserved for failing to run at all (missing binary, cancelled
// context, dead pipe).
package execrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"time"
)

// ErrNotFound is returned when the program cannot be located or is not
// executable by the time the invocation starts. The caller is expected to
// have checked for existence beforehand, so hitting this usually means the
// file vanished in between.
var ErrNotFound = errors.New("executable not found")

// Invocation describes a single child process run.
type Invocation struct {
	// Name is the program to run. Relative paths resolve against Dir,
	// or the caller's working directory when Dir is empty.
	Name string

	// Args are passed to the program verbatim.
	Args []string

	// Dir is the child's working directory. Empty inherits the caller's.
	Dir string

	// Stdout and Stderr receive the child's output. Nil discards.
	Stdout io.Writer
	Stderr io.Writer

	// Timeout bounds the run. Zero waits indefinitely.
	Timeout time.Duration
}

// Result holds the outcome of a completed invocation.
type Result struct {
	// ExitCode is the child's exit status. Zero on success.
	ExitCode int

	// Duration is wall-clock time from start to termination.
	Duration time.Duration
}

// Runner executes an invocation and blocks until the child terminates.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecRunner runs invocations with os/exec.
type ExecRunner struct{}

// New returns a Runner backed by os/exec.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run starts the program and waits for it to terminate.
//
// When Timeout is set, it wraps the wait as a deadline: the child is killed
// and the returned error carries context.DeadlineExceeded.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	if inv.Name == "" {
		return Result{}, fmt.Errorf("empty program name")
	}

	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err == nil {
		return Result{ExitCode: 0, Duration: elapsed}, nil
	}

	// A regular non-zero exit is the caller's to classify.
	if code := GetExitCode(err); code >= 0 {
		return Result{ExitCode: code, Duration: elapsed}, nil
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, inv.Name)
	}

	// A killed child (GetExitCode -1) with an expired context means the
	// deadline fired.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{Duration: elapsed}, fmt.Errorf("%s: %w", inv.Name, ctxErr)
	}

	return Result{Duration: elapsed}, fmt.Errorf("run %s: %w", inv.Name, err)
}

// IsExitError returns true if the error is an exit error with non-zero status.
func IsExitError(err error) bool {
	if err == nil {
		return false
	}
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

// GetExitCode returns the exit code from an error, or -1 if not an exit error.
// A nil error returns 0.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
