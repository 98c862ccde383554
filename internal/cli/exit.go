package cli

import "fmt"

// InternalErrorExitCode is the exit code for failures inside runcache
// itself (unusable cache directory, shell spawn failure, bad flags), as
// opposed to a cached command exiting non-zero. 125 stays clear of common
// command exit codes and the shell's 126/127 conventions.
const InternalErrorExitCode = 125

// ExitCodeError carries a cached or just-executed command's non-zero exit
// code from the command layer out to main, which exits with it. It is not a
// tool failure: the command's output has already been delivered when this
// error is returned.
type ExitCodeError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// ExitCode returns the code the process should exit with.
func (e *ExitCodeError) ExitCode() int {
	return e.Code
}

// exitError converts a command exit code into the error RunE should
// return: nil for success, *ExitCodeError otherwise.
func exitError(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitCodeError{Code: code}
}
