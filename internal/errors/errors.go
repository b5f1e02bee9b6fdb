package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Session and credential errors (AUTH-001 to AUTH-099)
	ErrCodeLoginFailed     ErrorCode = "AUTH-001"
	ErrCodeAdminRequired   ErrorCode = "AUTH-002"
	ErrCodeSessionInvalid  ErrorCode = "AUTH-003"
	ErrCodeNotLoggedIn     ErrorCode = "AUTH-004"
	ErrCodePromptCancelled ErrorCode = "AUTH-005"

	// Permission errors (PERM-001 to PERM-099)
	ErrCodePermissionDenied ErrorCode = "PERM-001"
	ErrCodeProtectedAccount ErrorCode = "PERM-002"

	// Backend API errors (API-001 to API-099)
	ErrCodeAPITransport ErrorCode = "API-001"
	ErrCodeAPIResponse  ErrorCode = "API-002"
	ErrCodeAPIContract  ErrorCode = "API-003"
	ErrCodeAPIDecode    ErrorCode = "API-004"

	// Token storage errors (STORE-001 to STORE-099)
	ErrCodeStoreRead    ErrorCode = "STORE-001"
	ErrCodeStoreWrite   ErrorCode = "STORE-002"
	ErrCodeStoreDelete  ErrorCode = "STORE-003"
	ErrCodeStoreConnect ErrorCode = "STORE-004"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigRead    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid ErrorCode = "CONFIG-002"

	// Input validation errors (INPUT-001 to INPUT-099)
	ErrCodeInputRequired ErrorCode = "INPUT-001"
	ErrCodeInputInvalid  ErrorCode = "INPUT-002"
)

// ConsoleError represents an enhanced error with code, suggestions, and documentation
type ConsoleError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *ConsoleError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ConsoleError) Unwrap() error {
	return e.Cause
}

// Category returns the code prefix, e.g. "AUTH" for "AUTH-004".
func (e *ConsoleError) Category() string {
	code := string(e.Code)
	if i := strings.IndexByte(code, '-'); i > 0 {
		return code[:i]
	}
	return code
}

// New creates a new ConsoleError
func New(code ErrorCode, message string) *ConsoleError {
	return &ConsoleError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ConsoleError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ConsoleError {
	return &ConsoleError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ConsoleError) WithSuggestion(suggestion string) *ConsoleError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ConsoleError) WithSuggestions(suggestions ...string) *ConsoleError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *ConsoleError) WithDocs(url string) *ConsoleError {
	e.DocsURL = url
	return e
}

// As finds the first ConsoleError in err's chain.
func As(err error) (*ConsoleError, bool) {
	var ce *ConsoleError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HasCode reports whether any ConsoleError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var ce *ConsoleError
		if !stderrors.As(err, &ce) {
			return false
		}
		if ce.Code == code {
			return true
		}
		err = ce.Cause
	}
	return false
}

// GetCode returns the code of the outermost ConsoleError, or "" when there is none.
func GetCode(err error) ErrorCode {
	if ce, ok := As(err); ok {
		return ce.Code
	}
	return ""
}

// Common error constructors for frequently used errors

// NewNotLoggedInError is returned by protected commands when no session exists
func NewNotLoggedInError() *ConsoleError {
	return New(ErrCodeNotLoggedIn, "not logged in").
		WithSuggestion("Run 'adminctl auth login' to authenticate").
		WithSuggestion("Check the backend URL with 'adminctl config view'")
}

// NewPermissionDeniedError creates a permission error naming the missing permission
func NewPermissionDeniedError(permission, role string) *ConsoleError {
	return New(ErrCodePermissionDenied, fmt.Sprintf("permission denied: %s is not allowed for role %q", permission, role)).
		WithSuggestion("Run 'adminctl auth permissions' to see what your role can do").
		WithSuggestion("Ask a super admin to perform this action")
}

// NewProtectedAccountError is returned for operations that would modify a super admin
func NewProtectedAccountError(action string) *ConsoleError {
	return New(ErrCodeProtectedAccount, fmt.Sprintf("super admin accounts cannot be %s", action)).
		WithSuggestion("Only email, password and name of a super admin can be updated")
}

// NewInputRequiredError creates a missing input error
func NewInputRequiredError(field string) *ConsoleError {
	return New(ErrCodeInputRequired, fmt.Sprintf("%s is required", field)).
		WithSuggestion("Run with --help to see all available options")
}

// NewInputInvalidError creates an invalid input error
func NewInputInvalidError(field string, value interface{}, validValues string) *ConsoleError {
	return New(ErrCodeInputInvalid, fmt.Sprintf("invalid value for %s: %v", field, value)).
		WithSuggestion(fmt.Sprintf("Valid values: %s", validValues))
}

// NewTransportError wraps a failure to reach the backend
func NewTransportError(method, path string, cause error) *ConsoleError {
	return Wrap(ErrCodeAPITransport, fmt.Sprintf("network request %s %s failed", method, path), cause).
		WithSuggestion("Check that the backend is running and reachable").
		WithSuggestion("Verify api_url with 'adminctl config view'")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *ConsoleError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Check ~/.adminctl/config.yaml and ADMINCTL_* environment variables")
}
