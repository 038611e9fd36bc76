package launcher

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/imcbsglobal/syncrun/internal/execrun"
)

// fakeRunner records invocations and returns a canned result.
type fakeRunner struct {
	calls  int
	last   execrun.Invocation
	result execrun.Result
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, inv execrun.Invocation) (execrun.Result, error) {
	f.calls++
	f.last = inv
	return f.result, f.err
}

// fakePresenter records prompts and pauses without blocking or sleeping.
type fakePresenter struct {
	acks   []string
	pauses []time.Duration
}

func (f *fakePresenter) WaitForAck(prompt string) { f.acks = append(f.acks, prompt) }
func (f *fakePresenter) Pause(d time.Duration)    { f.pauses = append(f.pauses, d) }

type fixture struct {
	dir       string
	out       *bytes.Buffer
	runner    *fakeRunner
	presenter *fakePresenter
	launcher  *Launcher
}

// newFixture builds a launcher pointing at dir. present controls which of
// the required files exist on disk.
func newFixture(t *testing.T, execPresent, configPresent bool, runner *fakeRunner) *fixture {
	t.Helper()

	dir := t.TempDir()
	execPath := filepath.Join(dir, "sync.exe")
	configPath := filepath.Join(dir, "config.json")

	if execPresent {
		if err := os.WriteFile(execPath, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatalf("Failed to create fake executable: %v", err)
		}
	}
	if configPresent {
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("Failed to create fake config: %v", err)
		}
	}

	out := &bytes.Buffer{}
	presenter := &fakePresenter{}

	l, err := New(Config{
		ExecPath:     execPath,
		ConfigPath:   configPath,
		LogPath:      filepath.Join(dir, "sync.log"),
		SuccessPause: 3 * time.Second,
		FailurePause: 10 * time.Second,
		Out:          out,
		Runner:       runner,
		Presenter:    presenter,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	return &fixture{dir: dir, out: out, runner: runner, presenter: presenter, launcher: l}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "empty exec path", cfg: Config{ConfigPath: "c", LogPath: "l", Presenter: &fakePresenter{}}},
		{name: "empty config path", cfg: Config{ExecPath: "e", LogPath: "l", Presenter: &fakePresenter{}}},
		{name: "empty log path", cfg: Config{ExecPath: "e", ConfigPath: "c", Presenter: &fakePresenter{}}},
		{name: "nil presenter", cfg: Config{ExecPath: "e", ConfigPath: "c", LogPath: "l"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestRunMissingExecutable(t *testing.T) {
	f := newFixture(t, false, true, &fakeRunner{})

	result := f.launcher.Run(context.Background())

	if result.Outcome != OutcomeMissingExecutable {
		t.Errorf("Expected outcome %s, got %s", OutcomeMissingExecutable, result.Outcome)
	}
	if result.ExitCode != ExitPrecondition {
		t.Errorf("Expected exit code %d, got %d", ExitPrecondition, result.ExitCode)
	}
	if !errors.Is(result.Err, ErrMissingExecutable) {
		t.Errorf("Expected ErrMissingExecutable, got %v", result.Err)
	}
	if !IsPrecondition(result.Err) {
		t.Error("Expected IsPrecondition to be true")
	}
	if f.runner.calls != 0 {
		t.Errorf("Sync program must not be spawned, got %d calls", f.runner.calls)
	}
	if !strings.Contains(f.out.String(), "sync.exe not found") {
		t.Errorf("Expected message naming sync.exe, got '%s'", f.out.String())
	}
	if len(f.presenter.acks) != 1 {
		t.Errorf("Expected one acknowledgment prompt, got %d", len(f.presenter.acks))
	}
	if len(f.presenter.pauses) != 0 {
		t.Errorf("Expected no timed pause on precondition failure, got %v", f.presenter.pauses)
	}
}

func TestRunMissingConfig(t *testing.T) {
	f := newFixture(t, true, false, &fakeRunner{})

	result := f.launcher.Run(context.Background())

	if result.Outcome != OutcomeMissingConfig {
		t.Errorf("Expected outcome %s, got %s", OutcomeMissingConfig, result.Outcome)
	}
	if result.ExitCode != ExitPrecondition {
		t.Errorf("Expected exit code %d, got %d", ExitPrecondition, result.ExitCode)
	}
	if !errors.Is(result.Err, ErrMissingConfig) {
		t.Errorf("Expected ErrMissingConfig, got %v", result.Err)
	}
	if f.runner.calls != 0 {
		t.Errorf("Sync program must not be spawned, got %d calls", f.runner.calls)
	}
	if !strings.Contains(f.out.String(), "config.json not found") {
		t.Errorf("Expected message naming config.json, got '%s'", f.out.String())
	}
}

func TestRunSuccess(t *testing.T) {
	runner := &fakeRunner{result: execrun.Result{ExitCode: 0, Duration: 2 * time.Second}}
	f := newFixture(t, true, true, runner)

	result := f.launcher.Run(context.Background())

	if result.Outcome != OutcomeSyncSucceeded {
		t.Errorf("Expected outcome %s, got %s", OutcomeSyncSucceeded, result.Outcome)
	}
	if result.ExitCode != ExitOK {
		t.Errorf("Expected exit code 0, got %d", result.ExitCode)
	}
	if result.Err != nil {
		t.Errorf("Expected nil error, got %v", result.Err)
	}
	if runner.calls != 1 {
		t.Errorf("Expected exactly one invocation, got %d", runner.calls)
	}
	if len(runner.last.Args) != 0 {
		t.Errorf("Expected no arguments, got %v", runner.last.Args)
	}
	if runner.last.Dir != "" {
		t.Errorf("Expected inherited working directory, got '%s'", runner.last.Dir)
	}
	if !strings.Contains(f.out.String(), "SYNC COMPLETED SUCCESSFULLY") {
		t.Errorf("Expected success banner, got '%s'", f.out.String())
	}
	if len(f.presenter.pauses) != 1 || f.presenter.pauses[0] != 3*time.Second {
		t.Errorf("Expected a single 3s pause, got %v", f.presenter.pauses)
	}
	if len(f.presenter.acks) != 0 {
		t.Errorf("Expected no acknowledgment prompt on success, got %v", f.presenter.acks)
	}
}

func TestRunSyncFailure(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{name: "exit 1", code: 1},
		{name: "exit 42", code: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: execrun.Result{ExitCode: tt.code}}
			f := newFixture(t, true, true, runner)

			result := f.launcher.Run(context.Background())

			if result.Outcome != OutcomeSyncFailed {
				t.Errorf("Expected outcome %s, got %s", OutcomeSyncFailed, result.Outcome)
			}
			if result.ExitCode != tt.code {
				t.Errorf("Expected child exit code %d forwarded, got %d", tt.code, result.ExitCode)
			}
			if result.ChildExitCode != tt.code {
				t.Errorf("Expected child exit code %d recorded, got %d", tt.code, result.ChildExitCode)
			}
			if !errors.Is(result.Err, ErrSyncFailed) {
				t.Errorf("Expected ErrSyncFailed, got %v", result.Err)
			}
			if IsPrecondition(result.Err) {
				t.Error("Sync failure must not classify as precondition failure")
			}
			if !strings.Contains(f.out.String(), "sync.log") {
				t.Errorf("Expected failure banner naming the log file, got '%s'", f.out.String())
			}
			if len(f.presenter.pauses) != 1 || f.presenter.pauses[0] != 10*time.Second {
				t.Errorf("Expected a single 10s pause, got %v", f.presenter.pauses)
			}
		})
	}
}

func TestRunLaunchFailure(t *testing.T) {
	runner := &fakeRunner{err: execrun.ErrNotFound}
	f := newFixture(t, true, true, runner)

	result := f.launcher.Run(context.Background())

	if result.Outcome != OutcomeLaunchFailed {
		t.Errorf("Expected outcome %s, got %s", OutcomeLaunchFailed, result.Outcome)
	}
	if result.ExitCode != ExitPrecondition {
		t.Errorf("Expected exit code %d, got %d", ExitPrecondition, result.ExitCode)
	}
	if !errors.Is(result.Err, ErrLaunchFailed) {
		t.Errorf("Expected ErrLaunchFailed, got %v", result.Err)
	}
}

// Running twice against the same fixture yields the same classification:
// nothing persists between runs.
func TestRunIdempotent(t *testing.T) {
	runner := &fakeRunner{result: execrun.Result{ExitCode: 42}}
	f := newFixture(t, true, true, runner)

	first := f.launcher.Run(context.Background())
	second := f.launcher.Run(context.Background())

	if first.Outcome != second.Outcome {
		t.Errorf("Expected identical outcomes, got %s then %s", first.Outcome, second.Outcome)
	}
	if first.ExitCode != second.ExitCode {
		t.Errorf("Expected identical exit codes, got %d then %d", first.ExitCode, second.ExitCode)
	}
	if runner.calls != 2 {
		t.Errorf("Expected one invocation per run, got %d total", runner.calls)
	}
}

func TestRunHeaderPrinted(t *testing.T) {
	f := newFixture(t, true, true, &fakeRunner{})

	f.launcher.Run(context.Background())

	if !strings.Contains(f.out.String(), "DATABASE SYNC LAUNCHER") {
		t.Errorf("Expected startup banner, got '%s'", f.out.String())
	}
}
