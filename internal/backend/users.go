package backend

import (
	"context"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/vantagedating/adminctl/internal/errors"
)

// UserFilter narrows the end-user directory.
type UserFilter string

// User directory filters
const (
	UserFilterAll        UserFilter = "all"
	UserFilterActive     UserFilter = "active"
	UserFilterInactive   UserFilter = "inactive"
	UserFilterVerified   UserFilter = "verified"
	UserFilterUnverified UserFilter = "unverified"
)

// UserFilters returns the accepted user filters.
func UserFilters() []string {
	return []string{"all", "active", "inactive", "verified", "unverified"}
}

// ParseUserFilter validates s. An empty string selects all.
func ParseUserFilter(s string) (UserFilter, error) {
	if s == "" {
		return UserFilterAll, nil
	}
	for _, f := range UserFilters() {
		if s == f {
			return UserFilter(s), nil
		}
	}
	return "", errors.NewInputInvalidError("filter", s, strings.Join(UserFilters(), ", "))
}

// MinimumAge is the youngest age an account may be created with.
const MinimumAge = 18

// CreateUserRequest is the payload for creating an end user.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
}

// Genders returns the accepted gender values.
func Genders() []string {
	return []string{"male", "female", "other"}
}

// Normalize trims the free-text fields.
func (r *CreateUserRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
}

// Validate checks the request before it is sent.
func (r CreateUserRequest) Validate() error {
	if r.Email == "" {
		return errors.NewInputRequiredError("email")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.NewInputInvalidError("email", r.Email, "a valid email address")
	}
	if r.Password == "" {
		return errors.NewInputRequiredError("password")
	}
	if r.FirstName == "" {
		return errors.NewInputRequiredError("first name")
	}
	if r.Age < MinimumAge {
		return errors.NewInputInvalidError("age", r.Age, "18 or older")
	}
	if r.Gender != "" {
		valid := false
		for _, g := range Genders() {
			if r.Gender == g {
				valid = true
				break
			}
		}
		if !valid {
			return errors.NewInputInvalidError("gender", r.Gender, strings.Join(Genders(), ", "))
		}
	}
	return nil
}

type usersResponse struct {
	Users []User `json:"users"`
}

type userResponse struct {
	User *User `json:"user"`
}

// ListUsers returns end users matching filter.
func (c *Client) ListUsers(ctx context.Context, filter UserFilter) ([]User, error) {
	query := url.Values{}
	if filter == "" {
		filter = UserFilterAll
	}
	query.Set("filter", string(filter))

	var resp usersResponse
	if err := c.get(ctx, RouteUsers, RouteUsers, query, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// UserStats returns the user base summary.
func (c *Client) UserStats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.get(ctx, RouteUserStats, RouteUserStats, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateUser creates an end user account. Backends without the admin create
// route get a registration request instead.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp userResponse
	err := c.post(ctx, RouteUsers, RouteUsers, req, &resp)
	if apiErr, ok := AsAPIError(err); ok && routeUnavailable(apiErr.StatusCode) {
		c.logger.Debug("admin user route unavailable, using registration", "status", apiErr.StatusCode)
		err = c.post(ctx, RouteRegister, RouteRegister, req, &resp)
	}
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return &User{Email: req.Email, Profile: &Profile{FirstName: req.FirstName, LastName: req.LastName, Age: req.Age, Gender: req.Gender}}, nil
	}
	return resp.User, nil
}

// routeUnavailable reports whether status means the backend has no such route.
func routeUnavailable(status int) bool {
	return status == http.StatusNotFound || status == http.StatusMethodNotAllowed
}

// SetUserActive activates or deactivates an end user.
func (c *Client) SetUserActive(ctx context.Context, id string, active bool) error {
	if id == "" {
		return errors.NewInputRequiredError("user id")
	}
	body := map[string]bool{"isActive": active}
	return c.put(ctx, RouteUserToggleActive, resourcePath(RouteUserToggleActive, id), body, nil)
}

// SetUserVerified sets the verification flag of an end user.
func (c *Client) SetUserVerified(ctx context.Context, id string, verified bool) error {
	if id == "" {
		return errors.NewInputRequiredError("user id")
	}
	body := map[string]bool{"isVerified": verified}
	return c.put(ctx, RouteUserToggleVerified, resourcePath(RouteUserToggleVerified, id), body, nil)
}
