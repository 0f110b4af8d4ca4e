// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package sec

import "github.com/tablonapp/tablon/internal/platform/apperr"

// # Authorization Policy
//
// Pure allow/deny decisions over (identity, resource). These functions never
// touch storage; callers resolve the resource owner first.

// RequireRole fails with 403 unless the identity holds one of the allowed roles.
func RequireRole(identity *Identity, allowed ...Role) error {
	if identity == nil {
		return apperr.Unauthorized("Authentication required")
	}
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return apperr.Forbidden("You do not have permission to perform this action")
}

// RequireOwnerOrRole allows the resource owner through regardless of role,
// and otherwise falls back to the role check.
func RequireOwnerOrRole(identity *Identity, ownerID int64, allowed ...Role) error {
	if identity == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if identity.ID == ownerID {
		return nil
	}
	return RequireRole(identity, allowed...)
}
