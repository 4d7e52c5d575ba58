// Package exitcode maps failures to the process exit statuses nt promises.
package exitcode

import (
	"errors"
	"os/exec"
)

const (
	OK            = 0
	Failure       = 1
	MissingTool   = 2
	UnknownAction = 3
	NoteNotFound  = 4
)

// Error carries the exit status a failure should terminate the process with.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err so that From reports code for it.
func New(code int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Err: err}
}

// From returns the exit status for err. External tools that exited non-zero
// propagate their own status unless it is one of the statuses reserved above,
// which is reported as Failure.
func From(err error) int {
	if err == nil {
		return OK
	}

	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code > 0 && !reserved(code) {
			return code
		}
	}

	return Failure
}

func reserved(code int) bool {
	return code >= MissingTool && code <= NoteNotFound
}
