package exitcode

import (
	"os"

	"github.com/aiutodesk/desk/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure
	AuthError = 3

	// ValidationError indicates the remote rejected a malformed request
	ValidationError = 4

	// ConflictError indicates a duplicate registration
	ConflictError = 5

	// NotFoundError indicates an unresolvable reference (tenant, ticket)
	NotFoundError = 6

	// NetworkError indicates a connectivity or timeout issue
	NetworkError = 7

	// Interrupted indicates the user cancelled with Ctrl+C (128 + SIGINT)
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to its exit code via the error's
// DeskError category. Errors without a code exit with GeneralError.
func DetermineExitCode(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.IsAuthentication(err):
		return AuthError
	case errors.IsValidation(err):
		return ValidationError
	case errors.IsConflict(err):
		return ConflictError
	case errors.IsNotFound(err):
		return NotFoundError
	case errors.IsNetwork(err):
		return NetworkError
	default:
		return GeneralError
	}
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case ValidationError:
		return "Validation error"
	case ConflictError:
		return "Conflict (already exists)"
	case NotFoundError:
		return "Not found"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted by user"
	default:
		return "Unknown error"
	}
}
