package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/vantagedating/adminctl/internal/domain"
	"github.com/vantagedating/adminctl/internal/errors"
)

// CreateAdminRequest is the payload for creating a system user.
type CreateAdminRequest struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
}

// Validate checks the request before it is sent. Super admins cannot be
// created from the console.
func (r CreateAdminRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.NewInputRequiredError("email")
	}
	if r.Password == "" {
		return errors.NewInputRequiredError("password")
	}
	if r.Role == domain.RoleSuperAdmin {
		return errors.NewProtectedAccountError("created").
			WithSuggestion("Create the account as admin or viewer")
	}
	if r.Role != domain.RoleAdmin && r.Role != domain.RoleViewer {
		return errors.NewInputInvalidError("role", r.Role, "admin, viewer")
	}
	return nil
}

// UpdateAdminRequest is the payload for editing a system user.
// An empty password leaves the password unchanged.
type UpdateAdminRequest struct {
	Email     string      `json:"email"`
	Password  string      `json:"password,omitempty"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
}

// PrepareAdminUpdate builds the update payload for target from the fields
// the operator supplied. Empty fields keep the target's current value.
//
// A super admin keeps the superadmin role; asking to change it is an error.
func PrepareAdminUpdate(target User, email, password, firstName, lastName string, role domain.Role) (UpdateAdminRequest, error) {
	req := UpdateAdminRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
		Role:     role,
	}
	if req.Email == "" {
		req.Email = target.Email
	}
	if target.Profile != nil {
		req.FirstName = target.Profile.FirstName
		req.LastName = target.Profile.LastName
	}
	if firstName != "" {
		req.FirstName = firstName
	}
	if lastName != "" {
		req.LastName = lastName
	}

	if target.Role() == domain.RoleSuperAdmin {
		if role != "" && role != domain.RoleSuperAdmin {
			return UpdateAdminRequest{}, errors.NewProtectedAccountError("demoted").
				WithSuggestion("Only email, password and name can be changed for a super admin")
		}
		req.Role = domain.RoleSuperAdmin
		return req, nil
	}

	if req.Role == "" {
		req.Role = target.Role()
	}
	if req.Role == domain.RoleSuperAdmin {
		return UpdateAdminRequest{}, errors.NewProtectedAccountError("promoted from the console")
	}
	if err := req.Role.Validate(); err != nil {
		return UpdateAdminRequest{}, errors.NewInputInvalidError("role", req.Role, "admin, viewer")
	}
	return req, nil
}

type adminsResponse struct {
	Admins []User `json:"admins"`
}

type adminResponse struct {
	Admin *User `json:"admin"`
}

// ListAdmins returns system users. Records whose userType is not a console
// role are dropped.
func (c *Client) ListAdmins(ctx context.Context) ([]User, error) {
	var resp adminsResponse
	if err := c.get(ctx, RouteAdmins, RouteAdmins, nil, &resp); err != nil {
		return nil, err
	}

	admins := make([]User, 0, len(resp.Admins))
	for _, a := range resp.Admins {
		if a.Role().IsAllowed() {
			admins = append(admins, a)
		}
	}
	return admins, nil
}

// GetAdmin finds a system user by id in the admin list.
func (c *Client) GetAdmin(ctx context.Context, id string) (*User, error) {
	admins, err := c.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	for i := range admins {
		if admins[i].ID == id {
			return &admins[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeInputInvalid, fmt.Sprintf("system user %q not found", id)).
		WithSuggestion("Run 'adminctl admins list' to see system user ids")
}

// CreateAdmin creates a system user.
func (c *Client) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp adminResponse
	if err := c.post(ctx, RouteAdmins, RouteAdmins, req, &resp); err != nil {
		return nil, err
	}
	if resp.Admin == nil {
		return &User{Email: req.Email, UserType: string(req.Role)}, nil
	}
	return resp.Admin, nil
}

// UpdateAdmin edits a system user.
func (c *Client) UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) error {
	if id == "" {
		return errors.NewInputRequiredError("system user id")
	}
	return c.put(ctx, RouteAdmin, resourcePath(RouteAdmin, id), req, nil)
}

// DeleteAdmin deletes a system user.
func (c *Client) DeleteAdmin(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewInputRequiredError("system user id")
	}
	return c.delete(ctx, RouteAdmin, resourcePath(RouteAdmin, id))
}
