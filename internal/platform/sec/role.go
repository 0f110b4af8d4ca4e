// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package sec

// # User Roles

// Role represents the authorization tier granted to an account.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can manage boards and moderate posts/comments
	RoleModerator Role = "moderator"

	// Default role for standard registered users
	RoleUser Role = "user"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// Identity is the authenticated user context attached to a request after the
// authentication gate resolves a token against the credential store.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
