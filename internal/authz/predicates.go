// Package authz holds the console's permission predicates.
//
// Every predicate is a pure function of the operator identity and is
// evaluated on each call. A nil identity satisfies no predicate.
package authz

import "github.com/vantagedating/adminctl/internal/domain"

func hasRole(id *domain.Identity, roles ...domain.Role) bool {
	if id == nil {
		return false
	}
	r := id.Role()
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}

// IsSuperAdmin reports whether the operator is a super admin.
func IsSuperAdmin(id *domain.Identity) bool {
	return hasRole(id, domain.RoleSuperAdmin)
}

// IsAdmin reports whether the operator is an admin. Super admins are not admins.
func IsAdmin(id *domain.Identity) bool {
	return hasRole(id, domain.RoleAdmin)
}

// IsViewer reports whether the operator is a viewer.
func IsViewer(id *domain.Identity) bool {
	return hasRole(id, domain.RoleViewer)
}

// CanCreateAdminUsers gates creating and editing system users.
func CanCreateAdminUsers(id *domain.Identity) bool {
	return IsSuperAdmin(id)
}

// CanDeleteAdminUsers gates deleting system users.
func CanDeleteAdminUsers(id *domain.Identity) bool {
	return IsSuperAdmin(id)
}

// CanViewUsers gates the end-user directory.
func CanViewUsers(id *domain.Identity) bool {
	return IsSuperAdmin(id) || IsViewer(id)
}

// CanCreateUsers gates creating end users.
func CanCreateUsers(id *domain.Identity) bool {
	return IsSuperAdmin(id) || IsViewer(id)
}

// CanEditUsers gates activating, verifying and deleting end users.
func CanEditUsers(id *domain.Identity) bool {
	return IsSuperAdmin(id)
}

// CanManageContent gates story moderation and catalog changes.
func CanManageContent(id *domain.Identity) bool {
	return IsSuperAdmin(id) || IsAdmin(id)
}

// CanManageReports gates the abuse report queue.
func CanManageReports(id *domain.Identity) bool {
	return IsSuperAdmin(id) || IsAdmin(id)
}
