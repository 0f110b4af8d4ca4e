// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Package comment owns replies attached to forum posts.
package comment

import "time"

// Comment is a member's reply on a post.
//
// # Rules
//   - Content is at least 3 characters after trimming.
//   - Comments are immutable once posted; only deletion is supported,
//     by the author or staff roles.
type Comment struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	PostID  int64  `json:"post_id"`

	UserID       int64  `json:"user_id"`
	Author       string `json:"author"`
	AuthorAvatar string `json:"author_avatar,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
