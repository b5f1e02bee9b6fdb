package health

import (
	"context"
	stderrors "errors"

	"github.com/vantagedating/adminctl/internal/auth"
	"github.com/vantagedating/adminctl/internal/domain"
)

// Pinger reaches the backend without requiring a valid session.
type Pinger interface {
	Ping(ctx context.Context) error
	BaseURL() string
}

// NewBackendChecker reports whether the backend answers HTTP.
func NewBackendChecker(p Pinger) Checker {
	return NewCheckFunc("backend", func(ctx context.Context) *Result {
		if err := p.Ping(ctx); err != nil {
			return Unhealthy("backend unreachable").
				WithDetail("api_url", p.BaseURL()).
				WithDetail("error", err.Error())
		}
		return Healthy("backend reachable").WithDetail("api_url", p.BaseURL())
	})
}

// TokenLoader reads the stored session token.
type TokenLoader interface {
	Load(ctx context.Context) (string, error)
}

// NewStoreChecker reports whether the token store can be read. An empty
// store is degraded, not unhealthy.
func NewStoreChecker(backend string, store TokenLoader) Checker {
	return NewCheckFunc("token-store", func(ctx context.Context) *Result {
		token, err := store.Load(ctx)
		if stderrors.Is(err, auth.ErrTokenNotFound) {
			token, err = "", nil
		}
		if err != nil {
			return Unhealthy("token store unreadable").
				WithDetail("backend", backend).
				WithDetail("error", err.Error())
		}
		if token == "" {
			return Degraded("no stored session").WithDetail("backend", backend)
		}
		return Healthy("session token stored").WithDetail("backend", backend)
	})
}

// SessionRestorer restores and describes the signed-in operator.
type SessionRestorer interface {
	Initialize(ctx context.Context) error
	Authenticated() bool
	Identity() *domain.Identity
}

// NewSessionChecker reports whether the stored session is accepted by the
// backend for a console role.
func NewSessionChecker(s SessionRestorer) Checker {
	return NewCheckFunc("session", func(ctx context.Context) *Result {
		if err := s.Initialize(ctx); err != nil {
			return Unhealthy("session could not be restored").WithDetail("error", err.Error())
		}
		if !s.Authenticated() {
			return Degraded("not logged in")
		}
		id := s.Identity()
		return Healthy("logged in").
			WithDetail("email", id.Email).
			WithDetail("role", id.Role().DisplayName())
	})
}
