package cmd

import (
	"errors"
	"fmt"

	"github.com/Ahnaf19/JobSnap/internal/config"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitUnknown       = 1
	ExitInvalidArgs   = 2
	ExitConfigInvalid = 3
	ExitFetchFailed   = 4
	ExitParseFailed   = 5
	ExitWriteFailed   = 6
)

// ExitError attaches an exit code to a command failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitError(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps err to the process exit status. Config errors without an
// explicit code exit with ExitConfigInvalid.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, config.ErrInvalid) {
		return ExitConfigInvalid
	}
	return ExitUnknown
}
