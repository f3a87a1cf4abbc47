package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if hre, ok := err.(*HRError); ok {
		return a.exitCodeFromHRError(hre)
	}

	return 1
}

// exitCodeFromHRError maps HRError categories to exit codes.
func (a *CLIErrorAdapter) exitCodeFromHRError(err *HRError) int {
	switch err.Category {
	case CategoryValidation, CategoryNotAllowed, CategoryNotFound, CategoryConflict:
		return 2 // Invalid usage / bad input
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryStorage, CategoryMessaging:
		return 8 // External system error
	case CategoryDaemon, CategoryRuntime:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// HandleError prints an error to stderr and returns the exit code to use.
func (a *CLIErrorAdapter) HandleError(err error) int {
	if err == nil {
		return 0
	}

	if hre, ok := err.(*HRError); ok {
		if a.verbose && hre.Cause != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\nCause: %v\n", hre.Message, hre.Cause)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", hre.Message)
		}
		for k, v := range hre.Context {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", k, v)
		}
		return a.exitCodeFromHRError(hre)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
