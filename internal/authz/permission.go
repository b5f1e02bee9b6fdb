package authz

import (
	"github.com/vantagedating/adminctl/internal/domain"
	"github.com/vantagedating/adminctl/internal/errors"
)

// Permission names a gated console action.
type Permission string

// Standard permissions, one per gating predicate
const (
	PermCreateAdminUsers Permission = "admins:create"
	PermDeleteAdminUsers Permission = "admins:delete"
	PermViewUsers        Permission = "users:view"
	PermCreateUsers      Permission = "users:create"
	PermEditUsers        Permission = "users:edit"
	PermManageContent    Permission = "content:manage"
	PermManageReports    Permission = "reports:manage"
)

// Predicate is a pure permission check over an identity.
type Predicate func(*domain.Identity) bool

var predicates = map[Permission]Predicate{
	PermCreateAdminUsers: CanCreateAdminUsers,
	PermDeleteAdminUsers: CanDeleteAdminUsers,
	PermViewUsers:        CanViewUsers,
	PermCreateUsers:      CanCreateUsers,
	PermEditUsers:        CanEditUsers,
	PermManageContent:    CanManageContent,
	PermManageReports:    CanManageReports,
}

// Permissions returns every named permission in display order.
func Permissions() []Permission {
	return []Permission{
		PermViewUsers,
		PermCreateUsers,
		PermEditUsers,
		PermCreateAdminUsers,
		PermDeleteAdminUsers,
		PermManageContent,
		PermManageReports,
	}
}

// String returns the string representation
func (p Permission) String() string {
	return string(p)
}

// Allowed evaluates the predicate mapped to perm. Unknown permissions are denied.
func Allowed(id *domain.Identity, perm Permission) bool {
	check, ok := predicates[perm]
	if !ok {
		return false
	}
	return check(id)
}

// Require returns nil when perm holds for id.
//
// A nil identity yields a not-logged-in error; otherwise a denial names the
// permission and the operator's role.
func Require(id *domain.Identity, perm Permission) error {
	if id == nil {
		return errors.NewNotLoggedInError()
	}
	if !Allowed(id, perm) {
		return errors.NewPermissionDeniedError(perm.String(), id.UserType)
	}
	return nil
}

// Grant is one row of a permission matrix.
type Grant struct {
	Permission Permission `json:"permission" yaml:"permission"`
	Allowed    bool       `json:"allowed" yaml:"allowed"`
}

// Matrix evaluates every named permission for id.
func Matrix(id *domain.Identity) []Grant {
	perms := Permissions()
	grants := make([]Grant, 0, len(perms))
	for _, p := range perms {
		grants = append(grants, Grant{Permission: p, Allowed: Allowed(id, p)})
	}
	return grants
}
