package cli

import (
	"errors"

	"github.com/yaklabco/syntree/pkg/analyze"
	"github.com/yaklabco/syntree/pkg/runner"
)

// Exit codes for syntree.
const (
	// ExitSuccess indicates the run completed.
	ExitSuccess = 0

	// ExitSyntaxErrors indicates syntax errors were found in strict mode.
	ExitSyntaxErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates an input could not be read.
	ExitIOError = 74
)

// Errors returned by commands. Each maps to an exit code.
var (
	// ErrSyntaxErrors is returned in strict mode when a tree has syntax
	// errors. The errors were already reported.
	ErrSyntaxErrors = errors.New("syntax errors found")

	// ErrInvalidUsage indicates bad flags or arguments.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig indicates the configuration could not be loaded.
	ErrConfig = errors.New("failed to load configuration")

	// ErrInputFailed is returned when an input could not be read or
	// decoded. The failures were already reported.
	ErrInputFailed = errors.New("some inputs could not be read")

	// ErrAnalysisFailed is returned when a file was read but could not be
	// analyzed. The failures were already reported.
	ErrAnalysisFailed = errors.New("some inputs could not be analyzed")
)

// ExitCodeFromResult determines the exit code of a completed run.
// Analysis failures rank above unreadable inputs, which rank above
// syntax errors.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	code := ExitSuccess
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		if !analyze.IsInputError(file.Error) {
			return ExitInternalError
		}
		code = ExitIOError
	}
	if code != ExitSuccess {
		return code
	}

	if strict && result.HasDiagnostics() {
		return ExitSyntaxErrors
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrSyntaxErrors):
		return ExitSyntaxErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputFailed):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an exit code for problems
// the reporter already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrSyntaxErrors) ||
		errors.Is(err, ErrInputFailed) ||
		errors.Is(err, ErrAnalysisFailed)
}

func errorForExitCode(code int) error {
	switch code {
	case ExitSyntaxErrors:
		return ErrSyntaxErrors
	case ExitIOError:
		return ErrInputFailed
	case ExitInternalError:
		return ErrAnalysisFailed
	default:
		return nil
	}
}
