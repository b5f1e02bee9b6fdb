package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantagedating/adminctl/internal/errors"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		userType string
		perm     Permission
		want     bool
	}{
		{"superadmin edits users", "superadmin", PermEditUsers, true},
		{"viewer views users", "viewer", PermViewUsers, true},
		{"viewer creates users", "viewer", PermCreateUsers, true},
		{"viewer cannot edit users", "viewer", PermEditUsers, false},
		{"admin cannot view users", "admin", PermViewUsers, false},
		{"admin manages reports", "admin", PermManageReports, true},
		{"viewer cannot manage content", "viewer", PermManageContent, false},
		{"admin cannot delete system users", "admin", PermDeleteAdminUsers, false},
		{"unknown permission", "superadmin", Permission("billing:refund"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(identity(tt.userType), tt.perm))
		})
	}
}

func TestRequire(t *testing.T) {
	t.Run("nil identity", func(t *testing.T) {
		err := Require(nil, PermViewUsers)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeNotLoggedIn))
	})

	t.Run("denied", func(t *testing.T) {
		err := Require(identity("admin"), PermEditUsers)
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodePermissionDenied))
		assert.Contains(t, err.Error(), "users:edit")
		assert.Contains(t, err.Error(), `"admin"`)
	})

	t.Run("allowed", func(t *testing.T) {
		assert.NoError(t, Require(identity("superadmin"), PermEditUsers))
	})
}

func TestPermissions_AllMapped(t *testing.T) {
	perms := Permissions()
	assert.Len(t, perms, len(predicates))
	for _, p := range perms {
		_, ok := predicates[p]
		assert.True(t, ok, "permission %s has no predicate", p)
	}
}

func TestMatrix(t *testing.T) {
	grants := Matrix(identity("viewer"))
	require.Len(t, grants, len(Permissions()))

	got := make(map[Permission]bool, len(grants))
	for _, g := range grants {
		got[g.Permission] = g.Allowed
	}

	assert.Equal(t, map[Permission]bool{
		PermViewUsers:        true,
		PermCreateUsers:      true,
		PermEditUsers:        false,
		PermCreateAdminUsers: false,
		PermDeleteAdminUsers: false,
		PermManageContent:    false,
		PermManageReports:    false,
	}, got)

	for _, g := range Matrix(nil) {
		assert.False(t, g.Allowed, "%s should be denied without identity", g.Permission)
	}
}
