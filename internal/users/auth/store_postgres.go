// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/dberr"
)

// userColumns is the canonical projection shared by every account lookup.
const userColumns = "id, username, email, password_hash, role, bio, avatar, created_at"

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record into the users table.
//
// The generated serial ID and creation timestamp are written back onto the
// entity. A unique violation on email or username surfaces as
// [apperr.Conflict] so registration races lose cleanly.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, email, password_hash, role, bio, avatar)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Bio,
		user.Avatar,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "user_repo_create")
	}

	return nil
}

// FindByID retrieves a user record by their unique ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE id = $1"
	return repository.findOne(ctx, query, id, "User not found")
}

// FindByEmail retrieves a user record by their unique email address.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE email = $1"
	return repository.findOne(ctx, query, email, "User not found with this email")
}

// FindByUsername retrieves a user record by their unique username.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE username = $1"
	return repository.findOne(ctx, query, username, "User not found with this username")
}

// FindByLogin retrieves a user record matching either email or username.
// Backs the flexible login form with a single round trip.
func (repository *PostgresUserRepository) FindByLogin(ctx context.Context, login string) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE email = $1 OR username = $1"
	return repository.findOne(ctx, query, login, "User not found")
}

// findOne runs a single-row account query and maps the no-rows case.
func (repository *PostgresUserRepository) findOne(ctx context.Context, query string, arg any, missing string) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Bio,
		&user.Avatar,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(missing)
		}
		return nil, fmt.Errorf("user_repo_find_failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies only the patch fields that are present.
//
// # Partial Updates
//
// The SET clause is assembled from non-nil patch fields so an absent field is
// never overwritten with a zero value. A patch with no fields is a no-op.
func (repository *PostgresUserRepository) UpdateProfile(ctx context.Context, id int64, patch ProfilePatch) error {
	assignments := make([]string, 0, 4)
	arguments := []any{id}

	appendField := func(column string, value *string) {
		if value == nil {
			return
		}
		arguments = append(arguments, *value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(arguments)))
	}

	appendField("username", patch.Username)
	appendField("email", patch.Email)
	appendField("bio", patch.Bio)
	appendField("avatar", patch.Avatar)

	if len(assignments) == 0 {
		return nil
	}

	query := "UPDATE users SET " + strings.Join(assignments, ", ") + " WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, arguments...)
	if err != nil {
		return dberr.Wrap(err, "user_repo_update_profile")
	}

	// The row count distinguishes "nothing changed" from "nothing there".
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

// UpdatePassword updates only the password hash for a specific user.
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, id int64, newHash string) error {
	const query = "UPDATE users SET password_hash = $2 WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id, newHash)
	if err != nil {
		return fmt.Errorf("user_repo_update_password_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User not found")
	}

	return nil
}

// Stats aggregates a member's forum activity in a single round trip.
func (repository *PostgresUserRepository) Stats(ctx context.Context, id int64) (*Stats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE user_id = $1),
			(SELECT COUNT(*) FROM comments WHERE user_id = $1),
			(SELECT COUNT(DISTINCT board_id) FROM posts WHERE user_id = $1)`

	stats := &Stats{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&stats.TotalPosts,
		&stats.TotalComments,
		&stats.BoardsParticipated,
	)

	if err != nil {
		return nil, fmt.Errorf("user_repo_stats_failed: %w", err)
	}

	return stats, nil
}
