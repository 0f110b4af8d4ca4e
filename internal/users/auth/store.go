// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package auth

import (
	"context"
)

// ProfilePatch carries the optional profile fields of an update request.
// Nil fields are left untouched by the store.
type ProfilePatch struct {
	Username *string
	Email    *string
	Bio      *string
	Avatar   *string
}

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation for Tablon is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// Create persists a brand-new user account and fills in the generated ID.
	//
	// Returns [apperr.Conflict] if a unique constraint (email/username) fails.
	Create(ctx context.Context, user *User) error

	// FindByID returns the account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail returns the account with the given email.
	//
	// Returns [apperr.NotFound] if no user is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByLogin returns the account matching the given email or username.
	// A single round trip backs the flexible login form.
	//
	// Returns [apperr.NotFound] if neither matches.
	FindByLogin(ctx context.Context, login string) (*User, error)

	// UpdateProfile applies the non-nil fields of the patch to the account.
	//
	// Returns [apperr.NotFound] if the account does not exist and
	// [apperr.Conflict] if a unique constraint fails.
	UpdateProfile(ctx context.Context, id int64, patch ProfilePatch) error

	// UpdatePassword replaces only the user's password hash.
	// This is separate from [UpdateProfile] to prevent accidental overwrites
	// during unrelated profile updates.
	UpdatePassword(ctx context.Context, id int64, newHash string) error

	// Stats aggregates the member's post, comment, and board activity.
	Stats(ctx context.Context, id int64) (*Stats, error)
}
