package cli

import (
	"errors"

	"github.com/yaklabco/tsdoclint/internal/configloader"
	"github.com/yaklabco/tsdoclint/pkg/fsutil"
	"github.com/yaklabco/tsdoclint/pkg/runner"
)

// Exit codes for tsdoclint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrInvalidUsage marks errors caused by bad flags or arguments.
var ErrInvalidUsage = errors.New("invalid usage")

// ErrConfig marks errors raised while loading or validating configuration.
var ErrConfig = errors.New("configuration error")

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	errs := result.Stats.DiagnosticsBySeverity["error"]
	warnings := result.Stats.DiagnosticsBySeverity["warning"]

	if errs > 0 {
		return ExitLintErrors
	}

	if strict && warnings > 0 {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError
	var exitErr *lintExitError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// lintExitError carries the exit code of a lint run that found issues.
// It wraps ErrLintIssuesFound.
type lintExitError struct {
	code int
}

func (e *lintExitError) Error() string { return ErrLintIssuesFound.Error() }

func (e *lintExitError) Unwrap() error { return ErrLintIssuesFound }
