// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package board

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/dberr"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// boardProjection joins the creator and aggregates post metrics. Boards whose
// creator was deleted keep an empty creator name (LEFT JOIN + COALESCE).
const boardProjection = `
	SELECT
		b.id, b.name, b.description, b.created_by, COALESCE(u.username, ''),
		COUNT(p.id), MAX(p.created_at), b.created_at
	FROM boards b
	LEFT JOIN users u ON u.id = b.created_by
	LEFT JOIN posts p ON p.board_id = b.id`

const boardGrouping = " GROUP BY b.id, u.username"

// PostgresBoardRepository implements the BoardRepository interface using pgx.
type PostgresBoardRepository struct {
	pool *pgxpool.Pool
}

// NewBoardRepository creates a new PostgreSQL implementation of the BoardRepository.
func NewBoardRepository(pool *pgxpool.Pool) *PostgresBoardRepository {
	return &PostgresBoardRepository{pool: pool}
}

// Create persists a new board record.
// A name collision surfaces as [apperr.Conflict] via the unique index.
func (repository *PostgresBoardRepository) Create(ctx context.Context, board *Board) error {
	const query = `
		INSERT INTO boards (name, description, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(ctx, query,
		board.Name,
		board.Description,
		board.CreatedBy,
	).Scan(&board.ID, &board.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "board_repo_create")
	}

	return nil
}

// FindByID retrieves one board with creator name and post metrics.
func (repository *PostgresBoardRepository) FindByID(ctx context.Context, id int64) (*Board, error) {
	query := boardProjection + " WHERE b.id = $1" + boardGrouping

	board := &Board{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&board.ID,
		&board.Name,
		&board.Description,
		&board.CreatedBy,
		&board.CreatorName,
		&board.PostCount,
		&board.LastPostDate,
		&board.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Board not found")
		}
		return nil, fmt.Errorf("board_repo_find_failed: %w", err)
	}

	return board, nil
}

// List returns a page of boards ordered alphabetically.
func (repository *PostgresBoardRepository) List(ctx context.Context, params pagination.Params) ([]Board, error) {
	query := boardProjection + boardGrouping + " ORDER BY b.name ASC LIMIT $1 OFFSET $2"

	rows, err := repository.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("board_repo_list_failed: %w", err)
	}
	defer rows.Close()

	boards := make([]Board, 0)
	for rows.Next() {
		var board Board
		err := rows.Scan(
			&board.ID,
			&board.Name,
			&board.Description,
			&board.CreatedBy,
			&board.CreatorName,
			&board.PostCount,
			&board.LastPostDate,
			&board.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("board_repo_scan_failed: %w", err)
		}
		boards = append(boards, board)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("board_repo_rows_failed: %w", err)
	}

	return boards, nil
}

// Update applies only the patch fields that are present.
func (repository *PostgresBoardRepository) Update(ctx context.Context, id int64, patch Patch) error {
	assignments := make([]string, 0, 2)
	arguments := []any{id}

	appendField := func(column string, value *string) {
		if value == nil {
			return
		}
		arguments = append(arguments, *value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(arguments)))
	}

	appendField("name", patch.Name)
	appendField("description", patch.Description)

	if len(assignments) == 0 {
		return nil
	}

	query := "UPDATE boards SET " + strings.Join(assignments, ", ") + " WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, arguments...)
	if err != nil {
		return dberr.Wrap(err, "board_repo_update")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Board not found")
	}

	return nil
}

// Delete removes a board; the schema cascades to its posts and comments.
func (repository *PostgresBoardRepository) Delete(ctx context.Context, id int64) error {
	const query = "DELETE FROM boards WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("board_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Board not found")
	}

	return nil
}
