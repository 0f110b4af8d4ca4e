// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Package auth owns the account lifecycle of the Tablon platform.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the system.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package auth

import (
	"time"

	"github.com/tablonapp/tablon/internal/platform/sec"
)

// User represents a registered member of the Tablon platform.
//
// # Rules
//   - Username is unique, 3 to 20 characters.
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively via the auth Service.
//   - Role defaults to [sec.RoleUser] on registration.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	Bio          string    `json:"bio,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity projects the account into the authorization view used by the
// middleware gate and the policy helpers.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Stats aggregates a member's forum activity.
//
// BoardsParticipated counts distinct boards the member has posted in.
type Stats struct {
	TotalPosts         int64 `json:"total_posts"`
	TotalComments      int64 `json:"total_comments"`
	BoardsParticipated int64 `json:"boards_participated"`
}

// Session represents a freshly issued token pair for an authenticated member.
//
// # Security Concept
//
// Access tokens are long-lived and stateless; there is no server-side
// revocation list. The refresh token carries a type marker so it can never be
// replayed against regular endpoints, and the refresh endpoint is its only
// consumer.
type Session struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
