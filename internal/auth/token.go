package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vantagedating/adminctl/internal/errors"
)

// TokenInfo is what the console can read from a bearer token without the
// backend's signing key. None of it is trusted for authorization.
type TokenInfo struct {
	Subject   string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	Issuer    string     `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty" yaml:"issuedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	Expired   bool       `json:"expired" yaml:"expired"`
	Algorithm string     `json:"algorithm" yaml:"algorithm"`
}

// Remaining returns the time left before expiry at now, or zero.
func (t *TokenInfo) Remaining(now time.Time) time.Duration {
	if t.ExpiresAt == nil || now.After(*t.ExpiresAt) {
		return 0
	}
	return t.ExpiresAt.Sub(now)
}

// ParseTokenInfo decodes the registered claims of a JWT without verifying
// its signature.
func ParseTokenInfo(token string, now time.Time) (*TokenInfo, error) {
	var claims jwt.RegisteredClaims
	parsed, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionInvalid, "session token is not a readable JWT", err)
	}

	info := &TokenInfo{
		Subject:   claims.Subject,
		Issuer:    claims.Issuer,
		Algorithm: parsed.Method.Alg(),
	}
	if claims.IssuedAt != nil {
		t := claims.IssuedAt.Time
		info.IssuedAt = &t
	}
	if claims.ExpiresAt != nil {
		t := claims.ExpiresAt.Time
		info.ExpiresAt = &t
		info.Expired = !now.Before(t)
	}
	return info, nil
}
