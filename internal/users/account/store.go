// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package account

import (
	"context"

	"github.com/tablonapp/tablon/pkg/pagination"
)

// DirectoryRepository defines the read-only data access contract for the
// public member directory.
//
// # Implementations
//
// The canonical implementation for Tablon is PostgreSQL ([PostgresDirectoryRepository]).
type DirectoryRepository interface {
	// List returns a page of members, newest first.
	List(ctx context.Context, params pagination.Params) ([]Member, error)

	// FindByID returns the public projection of a single account.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id int64) (*Member, error)

	// Search returns members whose username matches the query,
	// capped at limit rows.
	Search(ctx context.Context, query string, limit int) ([]Member, error)

	// TopPosters returns members ranked by authored post count,
	// capped at limit rows.
	TopPosters(ctx context.Context, limit int) ([]TopPoster, error)
}
