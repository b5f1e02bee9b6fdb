package exitcode

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/vantagedating/adminctl/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, bad input)
	UsageError = 2

	// PermissionDenied indicates the session role lacks a permission
	PermissionDenied = 3

	// ConfigError indicates an unusable configuration
	ConfigError = 4

	// AuthError indicates a missing, rejected or expired session
	AuthError = 5

	// NetworkError indicates the backend or token store could not be reached
	NetworkError = 6

	// Interrupted indicates the user cancelled (Ctrl-C or an aborted prompt)
	Interrupted = 130
)

// statusCoder is implemented by backend API errors.
type statusCoder interface {
	HTTPStatus() int
}

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

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode maps err to an exit code: coded errors first, then
// backend HTTP status, then message keywords.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if stderrors.Is(err, context.Canceled) {
		return Interrupted
	}

	if code, ok := fromErrorCode(err); ok {
		return code
	}

	var sc statusCoder
	if stderrors.As(err, &sc) {
		switch sc.HTTPStatus() {
		case 401:
			return AuthError
		case 403:
			return PermissionDenied
		}
		return GeneralError
	}

	return fromMessage(err)
}

func fromErrorCode(err error) (int, bool) {
	ce, ok := errors.As(err)
	if !ok {
		return 0, false
	}

	switch ce.Code {
	case errors.ErrCodePromptCancelled:
		return Interrupted, true
	case errors.ErrCodeAPITransport, errors.ErrCodeStoreConnect:
		return NetworkError, true
	}

	switch ce.Category() {
	case "PERM":
		return PermissionDenied, true
	case "CONFIG":
		return ConfigError, true
	case "AUTH":
		return AuthError, true
	case "INPUT":
		return UsageError, true
	case "API":
		// The backend answered; an APIError in the chain decides.
		var sc statusCoder
		if stderrors.As(err, &sc) {
			return 0, false
		}
		return GeneralError, true
	}
	return GeneralError, true
}

func fromMessage(err error) int {
	errMsg := strings.ToLower(err.Error())

	// Permission errors
	if strings.Contains(errMsg, "permission denied") || strings.Contains(errMsg, "access denied") {
		return PermissionDenied
	}

	// Authentication errors
	if strings.Contains(errMsg, "not logged in") || strings.Contains(errMsg, "unauthorized") {
		return AuthError
	}
	if strings.Contains(errMsg, "authentication") || strings.Contains(errMsg, "token") {
		return AuthError
	}

	// Network errors
	if strings.Contains(errMsg, "network") || strings.Contains(errMsg, "connection") {
		return NetworkError
	}
	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "accepts") && strings.Contains(errMsg, "arg(s)") {
		return UsageError
	}

	// Default to general error
	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or input)"
	case PermissionDenied:
		return "Permission denied"
	case ConfigError:
		return "Configuration error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
