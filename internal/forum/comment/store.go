// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package comment

import "context"

// CommentRepository defines the data access contract for comments.
type CommentRepository interface {
	// Create persists a new comment and fills in the generated ID.
	Create(ctx context.Context, comment *Comment) error

	// FindByID returns one comment with its author fields.
	//
	// Returns [apperr.NotFound] if the comment does not exist.
	FindByID(ctx context.Context, id int64) (*Comment, error)

	// ListByPost returns all comments on a post, oldest first.
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)

	// Delete removes the comment.
	//
	// Returns [apperr.NotFound] if the comment does not exist, so a repeated
	// delete surfaces as 404 instead of silently succeeding.
	Delete(ctx context.Context, id int64) error

	// PostExists reports whether the target post is present.
	//
	// Declared here instead of importing the post package so the dependency
	// between the two domains stays one-directional.
	PostExists(ctx context.Context, postID int64) (bool, error)
}
