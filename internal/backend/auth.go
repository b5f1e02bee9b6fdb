package backend

import (
	"context"

	"github.com/vantagedating/adminctl/internal/domain"
	"github.com/vantagedating/adminctl/internal/errors"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token   string          `json:"token"`
	User    domain.Identity `json:"user"`
	Message string          `json:"message,omitempty"`
}

type meResponse struct {
	User *domain.Identity `json:"user"`
}

// Login exchanges credentials for a bearer token.
//
// The client does not keep the token; installing it is the caller's job.
// A 2xx response is returned as decoded, even without a token, so the caller
// can check the role first.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, RouteLogin, RouteLogin, LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the identity bound to the current credential.
func (c *Client) Me(ctx context.Context) (*domain.Identity, error) {
	var resp meResponse
	if err := c.get(ctx, RouteMe, RouteMe, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.New(errors.ErrCodeAPIResponse, "profile response did not include a user")
	}
	return resp.User, nil
}
