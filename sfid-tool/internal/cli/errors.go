package cli

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitOutput    = 4
	ExitCancelled = 130
)

var (
	ErrMissingID    = errors.New("a Salesforce id is required (positional or --id)")
	ErrMissingStart = errors.New("--start must be provided for enum-from-value")
	ErrZeroSeq      = errors.New("--seq must be provided and non-zero (or use --until-stopped)")
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: ExitUsage, err: err}
}

func outputError(err error) error {
	return &exitError{code: ExitOutput, err: fmt.Errorf("output: %w", err)}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCancelled
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitFailure
}
