// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Package account exposes the public, read-only member directory.
//
// # Architecture
//
// Account lifecycle (registration, credentials, profile self-service) lives
// in the auth package; this package only projects accounts for public
// consumption and never touches password material.
package account

import (
	"time"

	"github.com/tablonapp/tablon/internal/platform/sec"
)

// Member is the public projection of a registered account.
// Email and password material are deliberately absent.
type Member struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      sec.Role  `json:"role"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TopPoster is a directory entry ranked by authored posts.
type TopPoster struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar,omitempty"`
	PostCount int64  `json:"post_count"`
}
