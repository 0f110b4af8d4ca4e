// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package comment

import (
	"context"
	"strings"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/sec"
	"github.com/tablonapp/tablon/internal/platform/validate"
)

// Service implements comment use cases.
type Service struct {
	commentRepository CommentRepository
}

// NewService constructs a new comment [Service].
func NewService(commentRepo CommentRepository) *Service {
	return &Service{commentRepository: commentRepo}
}

// CreateInput holds the data required to reply to a post.
type CreateInput struct {
	PostID  int64
	Content string
}

// Create validates and persists a new comment.
//
// # Business Rules
//   - Content is trimmed before the length check; 3 characters minimum.
//   - The target post must exist (404, not a validation error).
//   - Any authenticated member may comment.
func (service *Service) Create(ctx context.Context, author *sec.Identity, input CreateInput) (*Comment, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	content := strings.TrimSpace(input.Content)

	validator := validate.New().
		MinLen("content", content, 3)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Existence Check ────────────────────────────────────────────────

	exists, err := service.commentRepository.PostExists(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Post not found")
	}

	// ── 3. Persistence & Fresh Read ───────────────────────────────────────

	comment := &Comment{
		Content: content,
		PostID:  input.PostID,
		UserID:  author.ID,
	}

	if err := service.commentRepository.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Re-read through the joined projection for the author fields.
	return service.commentRepository.FindByID(ctx, comment.ID)
}

// ListByPost returns a post's comments in conversation order.
func (service *Service) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	return service.commentRepository.ListByPost(ctx, postID)
}

// Delete removes a comment after the owner-or-staff check.
//
// Existence is checked before authorization so a missing comment is a 404
// for everyone, not a 403 for non-owners.
func (service *Service) Delete(ctx context.Context, actor *sec.Identity, id int64) error {
	existing, err := service.commentRepository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := sec.RequireOwnerOrRole(actor, existing.UserID, sec.RoleAdmin, sec.RoleModerator); err != nil {
		return err
	}

	return service.commentRepository.Delete(ctx, id)
}
