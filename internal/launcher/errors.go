package launcher

import "errors"

// Errors returned by a launch, checked with errors.Is():
//
//	if errors.Is(result.Err, launcher.ErrMissingConfig) {
//	    // configuration file was absent, sync never started
//	}
var (
	// ErrMissingExecutable is returned when the sync program is absent.
	// The program is never invoked in this case.
	ErrMissingExecutable = errors.New("sync executable not found")

	// ErrMissingConfig is returned when the sync program's configuration
	// file is absent. The program is never invoked in this case.
	ErrMissingConfig = errors.New("configuration file not found")

	// ErrSyncFailed is returned when the sync program ran to completion
	// and reported a non-zero exit status.
	ErrSyncFailed = errors.New("sync program reported failure")

	// ErrLaunchFailed is returned when the sync program passed the
	// existence check but could not be started or was cut off before
	// producing an exit status.
	ErrLaunchFailed = errors.New("sync program could not be run")
)

// IsPrecondition returns true if the error is one of the missing-file
// failures detected before the sync program is started.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrMissingExecutable) || errors.Is(err, ErrMissingConfig)
}
