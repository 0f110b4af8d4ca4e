// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

// Package board owns the forum's top-level discussion areas.
package board

import "time"

// Board is a named discussion area that groups posts.
//
// # Rules
//   - Name is unique, 3 to 100 characters.
//   - Description is mandatory.
//   - Creating and editing boards is reserved to staff roles; deletion is
//     reserved to administrators.
type Board struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// CreatedBy is nil when the creating staff account was since deleted;
	// the board itself survives its creator.
	CreatedBy   *int64 `json:"created_by,omitempty"`
	CreatorName string `json:"creator_name,omitempty"`

	// # Computed Metrics
	//
	// Filled by the list/find joins, never written directly.
	PostCount    int64      `json:"post_count"`
	LastPostDate *time.Time `json:"last_post_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Patch carries the optional fields of a board update.
// Nil fields are left untouched by the store.
type Patch struct {
	Name        *string
	Description *string
}
