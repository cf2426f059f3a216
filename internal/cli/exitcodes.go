package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikispan/pkg/fsutil"
)

// Exit codes of the wikispan binary.
const (
	ExitSuccess       = 0
	ExitFileErrors    = 1
	ExitInvalidUsage  = 64
	ExitConfigError   = 65
	ExitInternalError = 70
	ExitIOError       = 74
)

var (
	// ErrFilesFailed signals that at least one file could not be processed.
	// The failures themselves have already been logged.
	ErrFilesFailed = errors.New("some files failed")

	// ErrConfig wraps configuration loading and validation failures.
	ErrConfig = errors.New("invalid configuration")

	// ErrUsage wraps invalid arguments.
	ErrUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
