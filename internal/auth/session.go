package auth

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
	"github.com/vantagedating/adminctl/internal/domain"
	"github.com/vantagedating/adminctl/internal/errors"
	"github.com/vantagedating/adminctl/internal/log"
	"github.com/vantagedating/adminctl/internal/metrics"
)

// Session is the authenticated console session.
//
// identity is non-nil only while token holds a value the backend accepted
// for an allowed role; every failed validation clears both.
type Session struct {
	client  Authenticator
	store   TokenStore
	logger  *log.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	once sync.Once
	// auth serializes Initialize, Login and Logout.
	auth sync.Mutex

	mu       sync.RWMutex
	token    string
	identity *domain.Identity
	loading  bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records session events on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithClock sets the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession returns an empty session backed by client and store.
func NewSession(client Authenticator, store TokenStore, opts ...Option) *Session {
	s := &Session{
		client: client,
		store:  store,
		logger: log.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize revalidates a stored token. It runs once; later calls return nil.
//
// Every failure leaves the session empty and is only logged: an unreadable
// store, a rejected token and a disallowed role alike. The error result is
// always nil.
func (s *Session) Initialize(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.auth.Lock()
		defer s.auth.Unlock()

		s.setLoading(true)
		defer s.setLoading(false)
		err = s.revalidate(ctx)
	})
	return err
}

func (s *Session) revalidate(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if stderrors.Is(err, ErrTokenNotFound) {
		s.metrics.RecordRevalidation(metrics.RevalidationNoToken)
		s.logger.Debug("no stored session")
		return nil
	}
	if err != nil {
		s.metrics.RecordRevalidation(metrics.RevalidationStoreError)
		s.logger.WithError(err).Warn("failed to read stored session")
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	identity, err := s.client.Me(ctx)
	if err != nil {
		s.logger.WithError(err).Debug("stored session rejected")
		s.discard(ctx, metrics.RevalidationRejected)
		return nil
	}
	if !identity.IsAllowed() {
		s.logger.Warn("stored session belongs to a non-console role", "email", identity.Email, "user_type", identity.UserType)
		s.discard(ctx, metrics.RevalidationInvalidRole)
		return nil
	}

	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()

	s.metrics.RecordRevalidation(metrics.RevalidationValid)
	s.logger.Debug("stored session restored", "email", identity.Email, "role", identity.UserType)
	return nil
}

// discard erases the stored token and clears the session.
func (s *Session) discard(ctx context.Context, outcome string) {
	if err := s.store.Delete(ctx); err != nil {
		s.logger.WithError(err).Warn("failed to erase stored session")
	}
	s.clear()
	s.metrics.RecordRevalidation(outcome)
}

func (s *Session) clear() {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Login authenticates with the backend and, for a console role, persists
// and installs the token. Failures never change an existing session, except
// a store write failure, which leaves the session empty.
func (s *Session) Login(ctx context.Context, email, password string) LoginResult {
	s.auth.Lock()
	defer s.auth.Unlock()

	logger := s.logger.With("email", email)

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		message := MessageLoginFailed
		outcome := metrics.LoginError
		if apiErr, ok := backend.AsAPIError(err); ok {
			outcome = metrics.LoginRejected
			if apiErr.BodyMessage != "" {
				message = apiErr.BodyMessage
			}
		}
		logger.WithError(err).Debug("login failed", "outcome", outcome)
		s.metrics.RecordLogin(outcome)
		return LoginResult{Message: message}
	}

	user := resp.User
	if !user.IsAllowed() {
		logger.Warn("login refused for non-console role", "user_type", user.UserType)
		s.metrics.RecordLogin(metrics.LoginForbiddenRole)
		return LoginResult{Message: MessageAdminRequired}
	}
	if resp.Token == "" {
		logger.Warn("login response did not include a token")
		s.metrics.RecordLogin(metrics.LoginError)
		return LoginResult{Message: MessageLoginFailed}
	}

	if err := s.store.Save(ctx, resp.Token); err != nil {
		logger.WithError(err).Warn("failed to persist session")
		s.clear()
		s.metrics.RecordLogin(metrics.LoginError)
		return LoginResult{Message: MessagePersistFailed}
	}

	s.mu.Lock()
	s.token = resp.Token
	s.identity = &user
	s.mu.Unlock()

	s.metrics.RecordLogin(metrics.LoginSuccess)
	logger.Info("logged in", "role", user.UserType)
	return LoginResult{Success: true}
}

// Logout erases the stored token and clears the session. Store errors are
// logged only.
func (s *Session) Logout(ctx context.Context) {
	s.auth.Lock()
	defer s.auth.Unlock()

	if err := s.store.Delete(ctx); err != nil {
		s.logger.WithError(err).Warn("failed to erase stored session")
	}
	s.clear()
	s.metrics.RecordLogout()
	s.logger.Debug("logged out")
}

// Identity returns a copy of the current identity, or nil.
func (s *Session) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// Token returns the bearer token currently held, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsLoading reports whether Initialize is running.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Authenticated reports whether an identity is held.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Authorize sets the bearer header from the current token, or removes it
// when no token is held.
func (s *Session) Authorize(req *http.Request) {
	token := s.Token()
	if token == "" {
		req.Header.Del("Authorization")
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

// Require fails unless the current identity holds perm.
func (s *Session) Require(perm authz.Permission) error {
	err := authz.Require(s.Identity(), perm)
	s.metrics.RecordPermissionCheck(string(perm), err == nil)
	return err
}

// TokenInfo decodes the claims of the held token.
func (s *Session) TokenInfo() (*TokenInfo, error) {
	token := s.Token()
	if token == "" {
		return nil, errors.NewNotLoggedInError()
	}
	return ParseTokenInfo(token, s.now())
}

func (s *Session) IsSuperAdmin() bool        { return authz.IsSuperAdmin(s.Identity()) }
func (s *Session) IsAdmin() bool             { return authz.IsAdmin(s.Identity()) }
func (s *Session) IsViewer() bool            { return authz.IsViewer(s.Identity()) }
func (s *Session) CanCreateAdminUsers() bool { return authz.CanCreateAdminUsers(s.Identity()) }
func (s *Session) CanDeleteAdminUsers() bool { return authz.CanDeleteAdminUsers(s.Identity()) }
func (s *Session) CanViewUsers() bool        { return authz.CanViewUsers(s.Identity()) }
func (s *Session) CanCreateUsers() bool      { return authz.CanCreateUsers(s.Identity()) }
func (s *Session) CanEditUsers() bool        { return authz.CanEditUsers(s.Identity()) }
func (s *Session) CanManageContent() bool    { return authz.CanManageContent(s.Identity()) }
func (s *Session) CanManageReports() bool    { return authz.CanManageReports(s.Identity()) }

var _ backend.CredentialSource = (*Session)(nil)
