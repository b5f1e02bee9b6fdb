// Package auth holds the console session: the bearer token, the identity it
// was validated for, and the permission predicates derived from that
// identity.
//
// A Session is created empty at process start and populated either by Login
// or by Initialize, which revalidates a token left in the TokenStore by an
// earlier run. Every backend call reads the token through Authorize, so a
// Logout takes effect on the very next request.
package auth

import (
	"context"

	"github.com/vantagedating/adminctl/internal/backend"
	"github.com/vantagedating/adminctl/internal/domain"
)

// Authenticator is the part of the backend the session talks to.
// *backend.Client satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResponse, error)
	Me(ctx context.Context) (*domain.Identity, error)
}

// LoginResult is the outcome of Login. Message is set when Success is false.
type LoginResult struct {
	Success bool
	Message string
}

// Login failure messages.
const (
	MessageLoginFailed   = "Login failed"
	MessageAdminRequired = "Admin access required"
	MessagePersistFailed = "Failed to persist session"
)
