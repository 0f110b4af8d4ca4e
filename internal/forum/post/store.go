// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package post

import (
	"context"

	"github.com/tablonapp/tablon/pkg/pagination"
)

// PostRepository defines the data access contract for posts.
//
// Every read returns the joined projection (board name, author fields,
// comment count) so handlers never assemble responses from partial rows.
type PostRepository interface {
	// Create persists a new post and fills in the generated ID.
	Create(ctx context.Context, post *Post) error

	// FindByID returns one post.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	FindByID(ctx context.Context, id int64) (*Post, error)

	// List returns a page of posts, newest first.
	List(ctx context.Context, params pagination.Params) ([]Post, error)

	// ListByBoard returns a page of posts on one board, newest first.
	ListByBoard(ctx context.Context, boardID int64, params pagination.Params) ([]Post, error)

	// ListByUser returns a page of posts authored by one member, newest first.
	ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]Post, error)

	// Search matches titles and bodies against the query, capped at limit rows.
	Search(ctx context.Context, query string, limit int) ([]Post, error)

	// Update applies the non-nil fields of the patch and bumps updated_at.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	Update(ctx context.Context, id int64, patch Patch) error

	// Delete removes the post; its comments cascade with it.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	Delete(ctx context.Context, id int64) error

	// IncrementViews atomically bumps the view counter and returns the new
	// value. A single UPDATE keeps concurrent reads from losing increments.
	//
	// Returns [apperr.NotFound] if the post does not exist.
	IncrementViews(ctx context.Context, id int64) (int64, error)
}
