// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// memberColumns is the public projection shared by directory queries.
const memberColumns = "id, username, role, bio, avatar, created_at"

// PostgresDirectoryRepository implements DirectoryRepository using pgx.
type PostgresDirectoryRepository struct {
	pool *pgxpool.Pool
}

// NewDirectoryRepository creates a new PostgreSQL implementation of the DirectoryRepository.
func NewDirectoryRepository(pool *pgxpool.Pool) *PostgresDirectoryRepository {
	return &PostgresDirectoryRepository{pool: pool}
}

// List returns a page of members ordered by registration date, newest first.
func (repository *PostgresDirectoryRepository) List(ctx context.Context, params pagination.Params) ([]Member, error) {
	const query = `
		SELECT ` + memberColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("directory_repo_list_failed: %w", err)
	}
	defer rows.Close()

	return scanMembers(rows)
}

// FindByID retrieves the public projection of one account.
func (repository *PostgresDirectoryRepository) FindByID(ctx context.Context, id int64) (*Member, error) {
	const query = "SELECT " + memberColumns + " FROM users WHERE id = $1"

	member := &Member{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.Username,
		&member.Role,
		&member.Bio,
		&member.Avatar,
		&member.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("directory_repo_find_failed: %w", err)
	}

	return member, nil
}

// Search matches usernames case-insensitively against the query substring.
func (repository *PostgresDirectoryRepository) Search(ctx context.Context, query string, limit int) ([]Member, error) {
	const sql = `
		SELECT ` + memberColumns + `
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username ASC
		LIMIT $2`

	rows, err := repository.pool.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("directory_repo_search_failed: %w", err)
	}
	defer rows.Close()

	return scanMembers(rows)
}

// TopPosters ranks members by authored post count.
// Accounts with no posts are excluded from the ranking.
func (repository *PostgresDirectoryRepository) TopPosters(ctx context.Context, limit int) ([]TopPoster, error) {
	const query = `
		SELECT u.id, u.username, u.avatar, COUNT(p.id) AS post_count
		FROM users u
		JOIN posts p ON p.user_id = u.id
		GROUP BY u.id, u.username, u.avatar
		ORDER BY post_count DESC, u.username ASC
		LIMIT $1`

	rows, err := repository.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("directory_repo_top_posters_failed: %w", err)
	}
	defer rows.Close()

	posters := make([]TopPoster, 0, limit)
	for rows.Next() {
		var poster TopPoster
		if err := rows.Scan(&poster.ID, &poster.Username, &poster.Avatar, &poster.PostCount); err != nil {
			return nil, fmt.Errorf("directory_repo_top_posters_scan_failed: %w", err)
		}
		posters = append(posters, poster)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory_repo_top_posters_rows_failed: %w", err)
	}

	return posters, nil
}

// scanMembers drains a member result set into a slice.
func scanMembers(rows pgx.Rows) ([]Member, error) {
	members := make([]Member, 0)
	for rows.Next() {
		var member Member
		err := rows.Scan(
			&member.ID,
			&member.Username,
			&member.Role,
			&member.Bio,
			&member.Avatar,
			&member.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("directory_repo_scan_failed: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory_repo_rows_failed: %w", err)
	}

	return members, nil
}
