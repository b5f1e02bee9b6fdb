package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vantagedating/adminctl/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a suggestion to errors that carry none. Console
// errors with their own suggestions are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	if ce, ok := errors.As(err); ok {
		if len(ce.Suggestions) > 0 {
			return err
		}
		switch ce.Code {
		case errors.ErrCodeNotLoggedIn, errors.ErrCodeSessionInvalid:
			return NewErrorWithSuggestion(err, "Sign in with 'adminctl auth login'")
		case errors.ErrCodePermissionDenied:
			return NewErrorWithSuggestion(err, "Run 'adminctl auth permissions' to see what your role allows")
		case errors.ErrCodeAPITransport:
			return NewErrorWithSuggestion(err, "Check that the backend is running and api_url points at it")
		}
	}

	errMsg := err.Error()

	// Network errors
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no such host") {
		return NewErrorWithSuggestion(err,
			"Check that the backend is running and api_url (or ADMINCTL_API_URL) points at it")
	}

	// Usage errors
	if strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "unknown flag") {
		return NewErrorWithSuggestion(err, "Run 'adminctl --help' for usage")
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}

var (
	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	errorHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RenderError formats err for stderr. The first line is styled as the
// error title; following lines (suggestions, docs) are dimmed.
func RenderError(err error, noColor bool) string {
	if err == nil {
		return ""
	}
	msg := EnhanceError(err).Error()
	title, rest, _ := strings.Cut(msg, "\n")
	title = "Error: " + title
	if noColor {
		if rest == "" {
			return title
		}
		return title + "\n" + rest
	}
	if rest == "" {
		return errorTitleStyle.Render(title)
	}
	return errorTitleStyle.Render(title) + "\n" + errorHintStyle.Render(rest)
}
