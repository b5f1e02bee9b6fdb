// Package backendtest provides an in-process fake of the Vantage Dating
// backend for tests.
//
// The server issues HS256 JWTs on login, checks the bearer token on every
// /api/admin and /api/auth/me request, applies the same role gates as the
// real backend, and records every request it receives.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vantagedating/adminctl/internal/backend"
	"github.com/vantagedating/adminctl/internal/domain"
)

// Password is the password of every seeded account.
const Password = "correct-horse"

// Seeded account emails, one per role plus a regular end user.
const (
	SuperAdminEmail = "root@vantage.test"
	AdminEmail      = "moderator@vantage.test"
	ViewerEmail     = "analyst@vantage.test"
	RegularEmail    = "member@vantage.test"
)

const issuer = "backendtest"

// Account is an account that can log in.
type Account struct {
	ID        string
	Email     string
	Password  string
	UserType  string
	FirstName string
	LastName  string
}

func (a Account) identity() domain.Identity {
	return domain.Identity{
		ID:        a.ID,
		Email:     a.Email,
		UserType:  a.UserType,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		IsActive:  true,
	}
}

// Request is a request received by the server.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          []byte
}

type failure struct {
	status  int
	message string
	body    string
}

type claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Server is a fake backend.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	signingKey []byte
	tokenTTL   time.Duration
	accounts   map[string]*Account
	revoked    map[string]bool
	failures   map[string]failure
	meOverride *domain.Identity
	requests   []Request
	nextID     int

	users             []backend.User
	profiles          []backend.MemberProfile
	credits           map[string]int
	admins            []backend.User
	reports           []backend.Report
	stories           []backend.Story
	wishlistCats      []backend.WishlistCategory
	wishlistProducts  []backend.WishlistProduct
	gifts             []backend.Gift
	presentCategories []backend.PresentCategory
	orders            []backend.GiftOrder
	creditSettings    backend.CreditSettings
}

// New starts a seeded fake backend and closes it when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := NewUnstarted()
	s.Start()
	t.Cleanup(s.Close)
	return s
}

// NewUnstarted returns a seeded server that has not started listening.
func NewUnstarted() *Server {
	s := &Server{
		signingKey: []byte("backendtest-signing-key"),
		tokenTTL:   time.Hour,
		accounts:   make(map[string]*Account),
		revoked:    make(map[string]bool),
		failures:   make(map[string]failure),
	}
	s.seed()
	s.Server = httptest.NewUnstartedServer(s.routes())
	return s
}

// AddAccount registers an account that can log in, replacing any account
// with the same email. The account is listed as a system user when its
// userType is a console role.
func (s *Server) AddAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		s.nextID++
		a.ID = fmt.Sprintf("acct-%d", s.nextID)
	}
	if a.Password == "" {
		a.Password = Password
	}
	acct := a
	s.accounts[a.Email] = &acct

	for i, existing := range s.admins {
		if existing.Email == a.Email {
			s.admins = append(s.admins[:i], s.admins[i+1:]...)
			break
		}
	}
	if !domain.Role(a.UserType).IsAllowed() {
		return
	}
	s.admins = append(s.admins, backend.User{
		ID:         a.ID,
		Email:      a.Email,
		UserType:   a.UserType,
		IsActive:   true,
		IsVerified: true,
		Profile:    &backend.Profile{FirstName: a.FirstName, LastName: a.LastName},
	})
}

// Account returns the account registered under email.
func (s *Server) Account(email string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return Account{}, false
	}
	return *a, true
}

// IssueToken mints a valid token for email without a login request.
func (s *Server) IssueToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		panic("backendtest: unknown account " + email)
	}
	token, err := s.signLocked(a, time.Now().Add(s.tokenTTL))
	if err != nil {
		panic(err)
	}
	return token
}

// IssueExpiredToken mints a token for email that expired an hour ago.
func (s *Server) IssueExpiredToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		panic("backendtest: unknown account " + email)
	}
	token, err := s.signLocked(a, time.Now().Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	return token
}

// Revoke makes the backend reject token from now on.
func (s *Server) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
}

// SetUserType changes the userType of an account in place.
func (s *Server) SetUserType(email, userType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[email]; ok {
		a.UserType = userType
	}
}

// OverrideMe makes /api/auth/me return id for any valid token.
// Passing nil restores normal behaviour.
func (s *Server) OverrideMe(id *domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meOverride = id
}

// Fail makes every request to route (a "METHOD /path" pattern such as
// "GET /api/auth/me") fail with status and a {message} body.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// FailRaw makes every request to route respond with status and a raw body.
func (s *Server) FailRaw(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

// ClearFailures removes every configured failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// RequestCount counts requests to method and path. Path may end in "*" to
// match a prefix.
func (s *Server) RequestCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Method != method {
			continue
		}
		if prefix, ok := strings.CutSuffix(path, "*"); ok {
			if strings.HasPrefix(r.Path, prefix) {
				n++
			}
		} else if r.Path == path {
			n++
		}
	}
	return n
}

// ResetRequests forgets every recorded request.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) signLocked(a *Account, expiresAt time.Time) (string, error) {
	now := time.Now()
	s.nextID++
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        fmt.Sprintf("tok-%d", s.nextID),
		},
		Email: a.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.signingKey)
}

// authenticate resolves the bearer token on r to an account.
func (s *Server) authenticate(r *http.Request) (*Account, string) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, "No token, authorization denied"
	}

	token, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !token.Valid {
		return nil, "Token is not valid"
	}

	c, ok := token.Claims.(*claims)
	if !ok {
		return nil, "Token is not valid"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revoked[raw] {
		return nil, "Token has been revoked"
	}
	a, ok := s.accounts[c.Email]
	if !ok || a.ID != c.Subject {
		return nil, "User not found"
	}
	return a, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // test server
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
