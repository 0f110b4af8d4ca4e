// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package post

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/dberr"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// postProjection joins board and author display fields and counts comments.
// Both joins are inner: board and author rows always exist because post rows
// cascade away with them.
const postProjection = `
	SELECT
		p.id, p.title, p.content, p.board_id, b.name,
		p.user_id, u.username, COALESCE(u.avatar, ''),
		p.image, p.views,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
		p.created_at, p.updated_at
	FROM posts p
	JOIN boards b ON b.id = p.board_id
	JOIN users u ON u.id = p.user_id`

// PostgresPostRepository implements the PostRepository interface using pgx.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostgreSQL implementation of the PostRepository.
func NewPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

// Create persists a new post record.
func (repository *PostgresPostRepository) Create(ctx context.Context, post *Post) error {
	const query = `
		INSERT INTO posts (title, content, board_id, user_id, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := repository.pool.QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.BoardID,
		post.UserID,
		post.Image,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "post_repo_create")
	}

	return nil
}

// FindByID retrieves one post with its joined projection.
func (repository *PostgresPostRepository) FindByID(ctx context.Context, id int64) (*Post, error) {
	query := postProjection + " WHERE p.id = $1"

	post := &Post{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.BoardID,
		&post.BoardName,
		&post.UserID,
		&post.Author,
		&post.AuthorAvatar,
		&post.Image,
		&post.Views,
		&post.CommentCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, fmt.Errorf("post_repo_find_failed: %w", err)
	}

	return post, nil
}

// List returns a page of posts, newest first.
func (repository *PostgresPostRepository) List(ctx context.Context, params pagination.Params) ([]Post, error) {
	query := postProjection + " ORDER BY p.created_at DESC LIMIT $1 OFFSET $2"
	return repository.queryPosts(ctx, query, params.Limit, params.Offset)
}

// ListByBoard returns a page of one board's posts, newest first.
func (repository *PostgresPostRepository) ListByBoard(ctx context.Context, boardID int64, params pagination.Params) ([]Post, error) {
	query := postProjection + " WHERE p.board_id = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3"
	return repository.queryPosts(ctx, query, boardID, params.Limit, params.Offset)
}

// ListByUser returns a page of one member's posts, newest first.
func (repository *PostgresPostRepository) ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]Post, error) {
	query := postProjection + " WHERE p.user_id = $1 ORDER BY p.created_at DESC LIMIT $2 OFFSET $3"
	return repository.queryPosts(ctx, query, userID, params.Limit, params.Offset)
}

// Search matches titles and bodies case-insensitively, newest first.
func (repository *PostgresPostRepository) Search(ctx context.Context, query string, limit int) ([]Post, error) {
	sql := postProjection + `
		WHERE p.title ILIKE '%' || $1 || '%' OR p.content ILIKE '%' || $1 || '%'
		ORDER BY p.created_at DESC
		LIMIT $2`
	return repository.queryPosts(ctx, sql, query, limit)
}

// Update applies only the patch fields that are present and bumps updated_at.
func (repository *PostgresPostRepository) Update(ctx context.Context, id int64, patch Patch) error {
	assignments := make([]string, 0, 4)
	arguments := []any{id}

	appendField := func(column string, value *string) {
		if value == nil {
			return
		}
		arguments = append(arguments, *value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(arguments)))
	}

	appendField("title", patch.Title)
	appendField("content", patch.Content)
	appendField("image", patch.Image)

	if len(assignments) == 0 {
		return nil
	}

	assignments = append(assignments, "updated_at = NOW()")
	query := "UPDATE posts SET " + strings.Join(assignments, ", ") + " WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, arguments...)
	if err != nil {
		return fmt.Errorf("post_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post not found")
	}

	return nil
}

// Delete removes a post; the schema cascades to its comments.
func (repository *PostgresPostRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM posts WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("post_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post not found")
	}

	return nil
}

// IncrementViews bumps the counter in a single statement so concurrent
// detail reads never lose an increment to a read-modify-write race.
func (repository *PostgresPostRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	const query = "UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views"

	var views int64
	err := repository.pool.QueryRow(ctx, query, id).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("Post not found")
		}
		return 0, fmt.Errorf("post_repo_increment_views_failed: %w", err)
	}

	return views, nil
}

// queryPosts runs a projection query and drains the result set.
func (repository *PostgresPostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("post_repo_query_failed: %w", err)
	}
	defer rows.Close()

	posts := make([]Post, 0)
	for rows.Next() {
		var post Post
		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.BoardID,
			&post.BoardName,
			&post.UserID,
			&post.Author,
			&post.AuthorAvatar,
			&post.Image,
			&post.Views,
			&post.CommentCount,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("post_repo_scan_failed: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("post_repo_rows_failed: %w", err)
	}

	return posts, nil
}
