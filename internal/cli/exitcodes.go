package cli

import (
	"errors"

	"github.com/yaklabco/formulint/pkg/runner"
)

// Exit codes for formulint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssues indicates a formula failed to parse or check found errors.
	ExitIssues = 1

	// ExitWarnings indicates check found warnings in strict mode.
	ExitWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrIssuesFound is returned once issues have been reported to the user.
// It only carries the exit status and should not be printed again.
var ErrIssuesFound = errors.New("issues found")

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	return ExitIssues
}

// ExitCodeFromResult determines the exit code of a check run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.Stats.Errors > 0:
		return ExitIssues
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	case strict && result.Stats.Warnings > 0:
		return ExitWarnings
	default:
		return ExitSuccess
	}
}
