// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Package post owns the forum's central aggregate: posts on boards.
package post

import "time"

// Post is a titled piece of content published on a board.
//
// # Rules
//   - Title is 3 to 200 characters.
//   - Content is at least 10 characters.
//   - Image is optional; its format depends on the deployment's upload mode.
//   - Editing and deletion are reserved to the author and staff roles.
type Post struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`

	BoardID   int64  `json:"board_id"`
	BoardName string `json:"board_name"`

	UserID       int64  `json:"user_id"`
	Author       string `json:"author"`
	AuthorAvatar string `json:"author_avatar,omitempty"`

	// Image is nil when the post has no image. In url mode it is an external
	// link; in upload mode it is a /uploads/ path served by this process.
	Image *string `json:"image,omitempty"`

	// # Computed Metrics
	//
	// Views is incremented atomically on every detail read. CommentCount is
	// a subquery in the projection, never written directly.
	Views        int64 `json:"views"`
	CommentCount int64 `json:"comment_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patch carries the optional fields of a post update.
// Nil fields are left untouched by the store.
type Patch struct {
	Title   *string
	Content *string
	Image   *string
}
