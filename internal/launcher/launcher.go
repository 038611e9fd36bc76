// Package launcher implements the check-then-run contract around the
// external sync program.
//
// A launch:
// 1. Verifies the sync executable exists
// 2. Verifies the configuration file exists
// 3. Runs the program to completion, no arguments, inherited working directory
// 4. Classifies the exit status and presents the outcome
// 5. Pauses so an interactive operator can read the banner
//
// The launcher never reads the configuration file or the log file; both
// belong to the sync program. Nothing persists between runs.
package launcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/imcbsglobal/syncrun/internal/execrun"
	"github.com/imcbsglobal/syncrun/internal/ui"
)

// Launcher exit codes. Precondition failures always exit with
// ExitPrecondition; when the sync program itself fails, its own exit code
// is forwarded unchanged so callers can tell the two apart for any child
// code other than 1.
const (
	ExitOK           = 0
	ExitPrecondition = 1
)

// Default pause lengths before the process exits, long enough for an
// operator to read the banner before the window closes.
const (
	DefaultSuccessPause = 3 * time.Second
	DefaultFailurePause = 10 * time.Second
)

// Presenter handles the operator-facing pauses at the end of a run.
//
// Implementations must be safe to call from the launch goroutine; the
// stock implementation is ui.Console.
type Presenter interface {
	// WaitForAck prints prompt and blocks until the operator acknowledges.
	// Returns immediately when no operator is attached.
	WaitForAck(prompt string)

	// Pause blocks for the given duration.
	Pause(d time.Duration)
}

// Config holds configuration for a launch. Paths are explicit rather than
// hardcoded relative names so tests can point the launcher at fixtures.
type Config struct {
	// ExecPath is the sync program to run.
	ExecPath string

	// ConfigPath is the configuration file the sync program reads.
	// The launcher only checks that it exists.
	ConfigPath string

	// LogPath is the log file the sync program writes. It is named in the
	// failure banner and never opened by the launcher.
	LogPath string

	// SuccessPause and FailurePause are how long to linger on each banner.
	SuccessPause time.Duration
	FailurePause time.Duration

	// Timeout bounds the sync run. Zero means run to completion.
	Timeout time.Duration

	// Out receives banners and status lines. Defaults to os.Stdout.
	// The sync program's own output is passed through to the same writer.
	Out io.Writer

	// Runner executes the sync program. Defaults to execrun.New().
	Runner execrun.Runner

	// Presenter handles prompts and pauses (required).
	Presenter Presenter

	// Logger records launch decisions. Defaults to discarding them.
	Logger *log.Logger
}

// Outcome classifies a completed launch.
type Outcome string

const (
	OutcomeMissingExecutable Outcome = "missing-executable"
	OutcomeMissingConfig     Outcome = "missing-config"
	OutcomeLaunchFailed      Outcome = "launch-failed"
	OutcomeSyncFailed        Outcome = "sync-failed"
	OutcomeSyncSucceeded     Outcome = "sync-succeeded"
)

// Result describes a completed launch.
type Result struct {
	// Outcome is the classification of this run.
	Outcome Outcome

	// ExitCode is the code the launcher process should exit with.
	ExitCode int

	// ChildExitCode is the sync program's own exit status. Only meaningful
	// for OutcomeSyncFailed and OutcomeSyncSucceeded.
	ChildExitCode int

	// Duration is how long the sync program ran.
	Duration time.Duration

	// Err is the classification error, nil on success.
	Err error
}

// Launcher runs the sync program once per Run call.
type Launcher struct {
	cfg Config
}

// New validates the configuration and returns a Launcher.
func New(cfg Config) (*Launcher, error) {
	if cfg.ExecPath == "" {
		return nil, fmt.Errorf("ExecPath cannot be empty")
	}
	if cfg.ConfigPath == "" {
		return nil, fmt.Errorf("ConfigPath cannot be empty")
	}
	if cfg.LogPath == "" {
		return nil, fmt.Errorf("LogPath cannot be empty")
	}
	if cfg.Presenter == nil {
		return nil, fmt.Errorf("Presenter cannot be nil")
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Runner == nil {
		cfg.Runner = execrun.New()
	}
	if cfg.SuccessPause <= 0 {
		cfg.SuccessPause = DefaultSuccessPause
	}
	if cfg.FailurePause <= 0 {
		cfg.FailurePause = DefaultFailurePause
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}

	return &Launcher{cfg: cfg}, nil
}

// Run executes the launch contract once and returns the classified result.
//
// The sync program is invoked at most once, and only after both required
// files were seen to exist. Run blocks until the program terminates and
// the final pause elapses.
func (l *Launcher) Run(ctx context.Context) Result {
	cfg := l.cfg

	fmt.Fprintln(cfg.Out, ui.Header(time.Now()))

	if !fileExists(cfg.ExecPath) {
		return l.missingFile(cfg.ExecPath, OutcomeMissingExecutable, ErrMissingExecutable)
	}
	if !fileExists(cfg.ConfigPath) {
		return l.missingFile(cfg.ConfigPath, OutcomeMissingConfig, ErrMissingConfig)
	}

	cfg.Logger.Printf("starting %s", cfg.ExecPath)
	fmt.Fprintf(cfg.Out, "Running %s...\n\n", filepath.Base(cfg.ExecPath))

	res, err := cfg.Runner.Run(ctx, execrun.Invocation{
		Name:    cfg.ExecPath,
		Stdout:  cfg.Out,
		Stderr:  cfg.Out,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		// The program passed the existence check but never produced an
		// exit status. Presented like a sync failure; exits with the
		// precondition code since there is no child code to forward.
		cfg.Logger.Printf("launch failed: %v", err)
		fmt.Fprintf(cfg.Out, "\n%s\n", ui.RenderFail(fmt.Sprintf("ERROR: %v", err)))
		fmt.Fprintln(cfg.Out, ui.FailureBanner(cfg.LogPath))
		cfg.Presenter.Pause(cfg.FailurePause)
		return Result{
			Outcome:  OutcomeLaunchFailed,
			ExitCode: ExitPrecondition,
			Duration: res.Duration,
			Err:      fmt.Errorf("%w: %v", ErrLaunchFailed, err),
		}
	}

	if res.ExitCode != 0 {
		cfg.Logger.Printf("sync failed with exit code %d after %s", res.ExitCode, res.Duration)
		fmt.Fprintln(cfg.Out, ui.FailureBanner(cfg.LogPath))
		cfg.Presenter.Pause(cfg.FailurePause)
		return Result{
			Outcome:       OutcomeSyncFailed,
			ExitCode:      res.ExitCode,
			ChildExitCode: res.ExitCode,
			Duration:      res.Duration,
			Err:           fmt.Errorf("%w: exit code %d", ErrSyncFailed, res.ExitCode),
		}
	}

	cfg.Logger.Printf("sync succeeded in %s", res.Duration)
	fmt.Fprintln(cfg.Out, ui.SuccessBanner())
	cfg.Presenter.Pause(cfg.SuccessPause)
	return Result{
		Outcome:  OutcomeSyncSucceeded,
		ExitCode: ExitOK,
		Duration: res.Duration,
	}
}

// missingFile reports an absent required file and waits for acknowledgment.
func (l *Launcher) missingFile(path string, outcome Outcome, sentinel error) Result {
	cfg := l.cfg

	cfg.Logger.Printf("precondition failed: %s missing", path)
	fmt.Fprintln(cfg.Out, ui.MissingFile(filepath.Base(path)))
	cfg.Presenter.WaitForAck("Press Enter to exit...")

	return Result{
		Outcome:  outcome,
		ExitCode: ExitPrecondition,
		Err:      fmt.Errorf("%w: %s", sentinel, path),
	}
}

// fileExists reports whether path exists as a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
