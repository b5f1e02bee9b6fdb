package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotLoggedIn, "test error message")

	if err.Code != ErrCodeNotLoggedIn {
		t.Errorf("expected code %s, got %s", ErrCodeNotLoggedIn, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeStoreRead, "failed to read token", cause)

	if err.Code != ErrCodeStoreRead {
		t.Errorf("expected code %s, got %s", ErrCodeStoreRead, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConsoleError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeInputInvalid, "invalid role"),
			wantCode: "INPUT-002",
			wantMsg:  "invalid role",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeStoreWrite, "write failed", fmt.Errorf("permission denied")),
			wantCode: "STORE-002",
			wantMsg:  "write failed: permission denied",
		},
		{
			name:     "error with suggestions",
			err:      New(ErrCodeNotLoggedIn, "not logged in").WithSuggestion("log in first"),
			wantCode: "AUTH-004",
			wantMsg:  "Suggestions:\n  • log in first",
		},
		{
			name:     "error with docs",
			err:      New(ErrCodeConfigInvalid, "bad config").WithDocs("https://example.com/config"),
			wantCode: "CONFIG-002",
			wantMsg:  "Documentation: https://example.com/config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if !strings.Contains(got, "["+tt.wantCode+"]") {
				t.Errorf("expected code %s in %q", tt.wantCode, got)
			}
			if !strings.Contains(got, tt.wantMsg) {
				t.Errorf("expected %q in %q", tt.wantMsg, got)
			}
		})
	}
}

func TestWithSuggestions(t *testing.T) {
	err := New(ErrCodeLoginFailed, "login failed").
		WithSuggestions("first", "second")

	if len(err.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(err.Suggestions))
	}
	if err.Suggestions[0] != "first" || err.Suggestions[1] != "second" {
		t.Errorf("unexpected suggestions: %v", err.Suggestions)
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeNotLoggedIn, "AUTH"},
		{ErrCodePermissionDenied, "PERM"},
		{ErrCodeAPITransport, "API"},
		{ErrCodeStoreConnect, "STORE"},
		{ErrCodeConfigRead, "CONFIG"},
		{ErrorCode("PLAIN"), "PLAIN"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := New(tt.code, "x").Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	inner := New(ErrCodeAPITransport, "dial failed")
	outer := Wrap(ErrCodeStoreConnect, "redis unreachable", inner)
	wrapped := fmt.Errorf("opening store: %w", outer)

	if !HasCode(wrapped, ErrCodeStoreConnect) {
		t.Error("expected outer code to be found")
	}
	if !HasCode(wrapped, ErrCodeAPITransport) {
		t.Error("expected inner code to be found")
	}
	if HasCode(wrapped, ErrCodeNotLoggedIn) {
		t.Error("unexpected code match")
	}
	if HasCode(errors.New("plain"), ErrCodeNotLoggedIn) {
		t.Error("plain errors carry no code")
	}
	if HasCode(nil, ErrCodeNotLoggedIn) {
		t.Error("nil carries no code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(fmt.Errorf("ctx: %w", NewNotLoggedInError())); got != ErrCodeNotLoggedIn {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeNotLoggedIn)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConsoleError
		wantCode ErrorCode
		contains string
	}{
		{"not logged in", NewNotLoggedInError(), ErrCodeNotLoggedIn, "adminctl auth login"},
		{"permission denied", NewPermissionDeniedError("users:edit", "viewer"), ErrCodePermissionDenied, `users:edit is not allowed for role "viewer"`},
		{"protected account", NewProtectedAccountError("deleted"), ErrCodeProtectedAccount, "cannot be deleted"},
		{"input required", NewInputRequiredError("--email"), ErrCodeInputRequired, "--email is required"},
		{"input invalid", NewInputInvalidError("--role", "owner", "admin, viewer"), ErrCodeInputInvalid, "Valid values: admin, viewer"},
		{"transport", NewTransportError("GET", "/api/auth/me", errors.New("refused")), ErrCodeAPITransport, "GET /api/auth/me failed: refused"},
		{"config", NewConfigInvalidError("timeout must be positive"), ErrCodeConfigInvalid, "timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("expected %q in %q", tt.contains, tt.err.Error())
			}
		})
	}
}
