// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package board

import (
	"context"

	"github.com/tablonapp/tablon/internal/platform/sec"
	"github.com/tablonapp/tablon/internal/platform/validate"
	"github.com/tablonapp/tablon/pkg/pagination"
)

// Service implements board management use cases.
//
// Role enforcement for board mutations happens at the route gate
// (admin/moderator for create and update, admin for delete); the service
// only needs the identity to record authorship.
type Service struct {
	boardRepository BoardRepository
}

// NewService constructs a new board [Service].
func NewService(boardRepo BoardRepository) *Service {
	return &Service{boardRepository: boardRepo}
}

// List returns a page of boards with their post metrics.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]Board, error) {
	return service.boardRepository.List(ctx, params)
}

// Get returns one board.
func (service *Service) Get(ctx context.Context, id int64) (*Board, error) {
	return service.boardRepository.FindByID(ctx, id)
}

// CreateInput holds the data required to open a new board.
type CreateInput struct {
	Name        string
	Description string
}

// Create validates and persists a new board.
//
// # Business Rules
//   - Name is 3 to 100 characters and unique.
//   - Description is mandatory.
func (service *Service) Create(ctx context.Context, creator *sec.Identity, input CreateInput) (*Board, error) {
	validator := validate.New().
		LenBetween("name", input.Name, 3, 100).
		Required("description", input.Description)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	board := &Board{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   &creator.ID,
	}

	if err := service.boardRepository.Create(ctx, board); err != nil {
		return nil, err
	}

	// Re-read through the joined projection so the response carries the
	// creator name and zeroed metrics.
	return service.boardRepository.FindByID(ctx, board.ID)
}

// UpdateInput holds the optional fields of a board update.
type UpdateInput struct {
	Name        *string
	Description *string
}

// Update applies a partial update and returns the fresh board.
func (service *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Board, error) {
	validator := validate.New()
	if input.Name != nil {
		validator.LenBetween("name", *input.Name, 3, 100)
	}
	if input.Description != nil {
		validator.Required("description", *input.Description)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	patch := Patch{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := service.boardRepository.Update(ctx, id, patch); err != nil {
		return nil, err
	}

	return service.boardRepository.FindByID(ctx, id)
}

// Delete removes a board and, through the schema, everything posted on it.
func (service *Service) Delete(ctx context.Context, id int64) error {
	return service.boardRepository.Delete(ctx, id)
}
