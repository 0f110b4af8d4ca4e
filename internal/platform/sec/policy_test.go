// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/sec"
)

func identityWithRole(role sec.Role) *sec.Identity {
	return &sec.Identity{ID: 10, Username: "casey", Role: role}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	return appError.HTTPStatus
}

/*
TestRequireRole covers the allow/deny matrix for pure role checks.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		allowed []sec.Role
		wantErr bool
	}{
		{"admin_allowed", sec.RoleAdmin, []sec.Role{sec.RoleAdmin}, false},
		{"moderator_in_staff_set", sec.RoleModerator, []sec.Role{sec.RoleAdmin, sec.RoleModerator}, false},
		{"user_denied_staff_set", sec.RoleUser, []sec.Role{sec.RoleAdmin, sec.RoleModerator}, true},
		{"moderator_denied_admin_only", sec.RoleModerator, []sec.Role{sec.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.RequireRole(identityWithRole(tt.role), tt.allowed...)
			if tt.wantErr {
				assert.Equal(t, http.StatusForbidden, statusOf(t, err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestRequireRole_Anonymous verifies that a nil identity is a 401, not a 403.
*/
func TestRequireRole_Anonymous(t *testing.T) {
	err := sec.RequireRole(nil, sec.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

/*
TestRequireOwnerOrRole verifies the ownership short-circuit and fallback.
*/
func TestRequireOwnerOrRole(t *testing.T) {
	owner := identityWithRole(sec.RoleUser)

	// Owner passes regardless of role.
	assert.NoError(t, sec.RequireOwnerOrRole(owner, owner.ID, sec.RoleAdmin))

	// Non-owner with an allowed role passes.
	moderator := identityWithRole(sec.RoleModerator)
	assert.NoError(t, sec.RequireOwnerOrRole(moderator, 999, sec.RoleAdmin, sec.RoleModerator))

	// Non-owner without the role is forbidden.
	stranger := identityWithRole(sec.RoleUser)
	err := sec.RequireOwnerOrRole(stranger, 999, sec.RoleAdmin, sec.RoleModerator)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	// Anonymous requests never pass the ownership check.
	err = sec.RequireOwnerOrRole(nil, owner.ID, sec.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

/*
TestRole_Valid verifies the known role tiers.
*/
func TestRole_Valid(t *testing.T) {
	assert.True(t, sec.RoleAdmin.Valid())
	assert.True(t, sec.RoleModerator.Valid())
	assert.True(t, sec.RoleUser.Valid())
	assert.False(t, sec.Role("superuser").Valid())
	assert.False(t, sec.Role("").Valid())
}
