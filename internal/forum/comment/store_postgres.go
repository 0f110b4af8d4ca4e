// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/dberr"
)

// commentProjection joins the author's display fields.
const commentProjection = `
	SELECT c.id, c.content, c.post_id, c.user_id, u.username, COALESCE(u.avatar, ''), c.created_at
	FROM comments c
	JOIN users u ON u.id = c.user_id`

// PostgresCommentRepository implements the CommentRepository interface using pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of the CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create persists a new comment record.
func (repository *PostgresCommentRepository) Create(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO comments (content, post_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(ctx, query,
		comment.Content,
		comment.PostID,
		comment.UserID,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "comment_repo_create")
	}

	return nil
}

// FindByID retrieves one comment with its author fields.
func (repository *PostgresCommentRepository) FindByID(ctx context.Context, id int64) (*Comment, error) {
	query := commentProjection + " WHERE c.id = $1"

	comment := &Comment{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.Content,
		&comment.PostID,
		&comment.UserID,
		&comment.Author,
		&comment.AuthorAvatar,
		&comment.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

// ListByPost returns a post's comments in conversation order, oldest first.
func (repository *PostgresCommentRepository) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	query := commentProjection + " WHERE c.post_id = $1 ORDER BY c.created_at ASC"

	rows, err := repository.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var comment Comment
		err := rows.Scan(
			&comment.ID,
			&comment.Content,
			&comment.PostID,
			&comment.UserID,
			&comment.Author,
			&comment.AuthorAvatar,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("comment_repo_rows_failed: %w", err)
	}

	return comments, nil
}

// Delete removes a comment, reporting a missing row as not found.
func (repository *PostgresCommentRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM comments WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("comment_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment not found")
	}

	return nil
}

// PostExists reports whether the target post is present.
func (repository *PostgresCommentRepository) PostExists(ctx context.Context, postID int64) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)"

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, postID).Scan(&exists); err != nil {
		return false, fmt.Errorf("comment_repo_post_exists_failed: %w", err)
	}

	return exists, nil
}
