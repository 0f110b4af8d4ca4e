// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package board

import (
	"context"

	"github.com/tablonapp/tablon/pkg/pagination"
)

// BoardRepository defines the data access contract for boards.
//
// # Architecture
//
// Implementations live alongside in store_postgres.go — the interface lives
// here because the service layer (the consumer) defines what it needs.
type BoardRepository interface {
	// Create persists a new board and fills in the generated ID.
	//
	// Returns [apperr.Conflict] if the name is already taken.
	Create(ctx context.Context, board *Board) error

	// FindByID returns one board with its creator name and post metrics.
	//
	// Returns [apperr.NotFound] if the board does not exist.
	FindByID(ctx context.Context, id int64) (*Board, error)

	// List returns a page of boards with creator names and post metrics.
	List(ctx context.Context, params pagination.Params) ([]Board, error)

	// Update applies the non-nil fields of the patch.
	//
	// Returns [apperr.NotFound] if the board does not exist and
	// [apperr.Conflict] on a name collision.
	Update(ctx context.Context, id int64, patch Patch) error

	// Delete removes the board. Posts and their comments go with it
	// through the schema's cascade rules.
	//
	// Returns [apperr.NotFound] if the board does not exist.
	Delete(ctx context.Context, id int64) error
}
