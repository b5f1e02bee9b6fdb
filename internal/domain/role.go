package domain

import "fmt"

// Role is the userType of a console operator.
// This is a value object that enforces valid role values.
type Role string

// Operator roles accepted by the console
const (
	RoleSuperAdmin Role = "superadmin" // Full control, including system users
	RoleAdmin      Role = "admin"      // Content and report moderation
	RoleViewer     Role = "viewer"     // User directory access
)

// AllowedRoles returns every role that may hold a console session.
func AllowedRoles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleViewer}
}

// NewRole creates a new Role value object with validation
func NewRole(value string) (Role, error) {
	r := Role(value)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate checks if the role is one of the console roles.
// Matching is exact: no case folding and no trimming.
func (r Role) Validate() error {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleViewer:
		return nil
	default:
		return fmt.Errorf("invalid role %q: must be superadmin, admin, or viewer", string(r))
	}
}

// IsAllowed reports whether r may hold a console session.
func (r Role) IsAllowed() bool {
	return r.Validate() == nil
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}

// DisplayName returns the label used in tables and prompts.
func (r Role) DisplayName() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	case RoleViewer:
		return "Viewer"
	default:
		return string(r)
	}
}
