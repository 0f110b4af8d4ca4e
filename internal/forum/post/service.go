// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package post

import (
	"context"
	"strings"

	"github.com/tablonapp/tablon/internal/forum/board"
	"github.com/tablonapp/tablon/internal/platform/sec"
	"github.com/tablonapp/tablon/internal/platform/validate"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// searchResultLimit caps search results regardless of paging.
const searchResultLimit = 20

// BoardFinder resolves boards for existence checks.
//
// Satisfied by the board package's repository; declared here so the post
// service does not depend on a concrete storage type.
type BoardFinder interface {
	FindByID(ctx context.Context, id int64) (*board.Board, error)
}

// Service implements post use cases.
//
// # Authorization
//
// Mutations follow the owner-or-staff rule: the author, an admin, or a
// moderator may edit and delete. The check lives here rather than in route
// middleware because it needs the stored row's author.
type Service struct {
	postRepository PostRepository
	boards         BoardFinder
}

// NewService constructs a new post [Service].
func NewService(postRepo PostRepository, boards BoardFinder) *Service {
	return &Service{
		postRepository: postRepo,
		boards:         boards,
	}
}

// List returns a page of posts across all boards.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]Post, error) {
	return service.postRepository.List(ctx, params)
}

// ListByBoard returns a page of one board's posts.
//
// Returns [apperr.NotFound] if the board does not exist, so an empty board
// and a missing board are distinguishable.
func (service *Service) ListByBoard(ctx context.Context, boardID int64, params pagination.Params) ([]Post, error) {
	if _, err := service.boards.FindByID(ctx, boardID); err != nil {
		return nil, err
	}
	return service.postRepository.ListByBoard(ctx, boardID, params)
}

// ListByUser returns a page of one member's posts.
// An unknown member yields an empty page rather than an error.
func (service *Service) ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]Post, error) {
	return service.postRepository.ListByUser(ctx, userID, params)
}

// Search matches titles and bodies against a free-text query.
//
// # Business Rules
//   - The query is trimmed; fewer than 2 remaining characters is rejected.
//   - Results are capped at 20 regardless of pagination parameters.
func (service *Service) Search(ctx context.Context, query string) ([]Post, string, error) {
	query = strings.TrimSpace(query)

	validator := validate.New().
		Custom("q", len([]rune(query)) < 2, "Search query must be at least 2 characters")
	if err := validator.Err(); err != nil {
		return nil, "", err
	}

	posts, err := service.postRepository.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil, "", err
	}

	return posts, query, nil
}

// Get returns one post and registers the read.
//
// # Flow
//  1. Load the joined projection (404 if absent).
//  2. Atomically bump the view counter; the returned value replaces the one
//     read in step 1 so the response never understates views.
func (service *Service) Get(ctx context.Context, id int64) (*Post, error) {
	post, err := service.postRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := service.postRepository.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Views = views

	return post, nil
}

// CreateInput holds the data required to publish a post.
type CreateInput struct {
	Title   string
	Content string
	BoardID int64
	Image   *string // Already validated or stored by the handler.
}

// Create validates and persists a new post.
//
// # Business Rules
//   - Title is 3 to 200 characters; content is at least 10.
//   - The target board must exist (404, not a validation error).
//   - Any authenticated member may post; there is no role gate here.
func (service *Service) Create(ctx context.Context, author *sec.Identity, input CreateInput) (*Post, error) {
	// ── 1. Boundary Validation ────────────────────────────────────────────

	validator := validate.New().
		LenBetween("title", input.Title, 3, 200).
		MinLen("content", input.Content, 10).
		Custom("board_id", input.BoardID < 1, "A target board is required")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Existence Check ────────────────────────────────────────────────

	if _, err := service.boards.FindByID(ctx, input.BoardID); err != nil {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	post := &Post{
		Title:   input.Title,
		Content: input.Content,
		BoardID: input.BoardID,
		UserID:  author.ID,
		Image:   input.Image,
	}

	if err := service.postRepository.Create(ctx, post); err != nil {
		return nil, err
	}

	// ── 4. Fresh Read ─────────────────────────────────────────────────────

	return service.postRepository.FindByID(ctx, post.ID)
}

// UpdateInput holds the optional fields of a post update.
type UpdateInput struct {
	Title   *string
	Content *string
	Image   *string
}

// Update applies a partial update after the owner-or-staff check.
//
// # Flow
//
// Existence is checked before authorization so a missing post is a 404 for
// everyone, not a 403 for non-owners.
func (service *Service) Update(ctx context.Context, actor *sec.Identity, id int64, input UpdateInput) (*Post, error) {
	// ── 1. Existence Check ────────────────────────────────────────────────

	existing, err := service.postRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// ── 2. Authorization ──────────────────────────────────────────────────

	if err := sec.RequireOwnerOrRole(actor, existing.UserID, sec.RoleAdmin, sec.RoleModerator); err != nil {
		return nil, err
	}

	// ── 3. Boundary Validation ────────────────────────────────────────────

	validator := validate.New()
	if input.Title != nil {
		validator.LenBetween("title", *input.Title, 3, 200)
	}
	if input.Content != nil {
		validator.MinLen("content", *input.Content, 10)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 4. Persistence & Fresh Read ───────────────────────────────────────

	patch := Patch{
		Title:   input.Title,
		Content: input.Content,
		Image:   input.Image,
	}

	if err := service.postRepository.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	return service.postRepository.FindByID(ctx, id)
}

// Delete removes a post after the owner-or-staff check.
//
// It returns the deleted post's image URL (if any) so the handler can run
// the compensating file removal in upload mode.
func (service *Service) Delete(ctx context.Context, actor *sec.Identity, id int64) (*string, error) {
	existing, err := service.postRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sec.RequireOwnerOrRole(actor, existing.UserID, sec.RoleAdmin, sec.RoleModerator); err != nil {
		return nil, err
	}

	if err := service.postRepository.Delete(ctx, id); err != nil {
		return nil, err
	}

	return existing.Image, nil
}
