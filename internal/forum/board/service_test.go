// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package board

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablonapp/tablon/internal/platform/apperr"
	"github.com/tablonapp/tablon/internal/platform/sec"
	"github.com/tablonapp/tablon/pkg/pagination"
	"github.com/tablonapp/tablon/pkg/pointer"
)

// fakeBoardRepository is an in-memory BoardRepository.
type fakeBoardRepository struct {
	boards map[int64]*Board
	nextID int64
}

func newFakeBoardRepository() *fakeBoardRepository {
	return &fakeBoardRepository{boards: make(map[int64]*Board), nextID: 1}
}

func (f *fakeBoardRepository) Create(_ context.Context, board *Board) error {
	for _, existing := range f.boards {
		if existing.Name == board.Name {
			return apperr.Conflict("A record with these values already exists")
		}
	}
	board.ID = f.nextID
	f.nextID++
	f.boards[board.ID] = board
	return nil
}

func (f *fakeBoardRepository) FindByID(_ context.Context, id int64) (*Board, error) {
	if board, ok := f.boards[id]; ok {
		return board, nil
	}
	return nil, apperr.NotFound("Board not found")
}

func (f *fakeBoardRepository) List(_ context.Context, _ pagination.Params) ([]Board, error) {
	boards := make([]Board, 0, len(f.boards))
	for _, board := range f.boards {
		boards = append(boards, *board)
	}
	return boards, nil
}

func (f *fakeBoardRepository) Update(_ context.Context, id int64, patch Patch) error {
	board, ok := f.boards[id]
	if !ok {
		return apperr.NotFound("Board not found")
	}
	if patch.Name != nil {
		board.Name = *patch.Name
	}
	if patch.Description != nil {
		board.Description = *patch.Description
	}
	return nil
}

func (f *fakeBoardRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.boards[id]; !ok {
		return apperr.NotFound("Board not found")
	}
	delete(f.boards, id)
	return nil
}

func staffIdentity() *sec.Identity {
	return &sec.Identity{ID: 7, Username: "mod", Role: sec.RoleModerator}
}

/*
TestService_Create covers the happy path and the name bounds.
*/
func TestService_Create(t *testing.T) {
	t.Run("valid_board", func(t *testing.T) {
		service := NewService(newFakeBoardRepository())

		board, err := service.Create(context.Background(), staffIdentity(), CreateInput{
			Name:        "Retro Computing",
			Description: "Anything with less than a megabyte of RAM.",
		})

		require.NoError(t, err)
		assert.Equal(t, "Retro Computing", board.Name)
		require.NotNil(t, board.CreatedBy)
		assert.EqualValues(t, 7, *board.CreatedBy)
	})

	invalid := []struct {
		name  string
		input CreateInput
	}{
		{"name_too_short", CreateInput{Name: "ab", Description: "desc"}},
		{"name_too_long", CreateInput{Name: string(make([]byte, 101)), Description: "desc"}},
		{"missing_description", CreateInput{Name: "Retro Computing", Description: ""}},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(newFakeBoardRepository())

			_, err := service.Create(context.Background(), staffIdentity(), tt.input)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
		})
	}
}

/*
TestService_Update verifies patch semantics: absent fields stay put.
*/
func TestService_Update(t *testing.T) {
	repo := newFakeBoardRepository()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, staffIdentity(), CreateInput{
		Name:        "Retro Computing",
		Description: "Original description.",
	})
	require.NoError(t, err)

	t.Run("description_only", func(t *testing.T) {
		board, err := service.Update(ctx, created.ID, UpdateInput{Description: pointer.To("Updated description.")})
		require.NoError(t, err)
		assert.Equal(t, "Updated description.", board.Description)
		assert.Equal(t, "Retro Computing", board.Name, "name untouched")
	})

	t.Run("invalid_patch_name", func(t *testing.T) {
		_, err := service.Update(ctx, created.ID, UpdateInput{Name: pointer.To("ab")})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	})

	t.Run("missing_board", func(t *testing.T) {
		_, err := service.Update(ctx, 999, UpdateInput{Name: pointer.To("Valid Name")})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Delete verifies deletion and the not-found case.
*/
func TestService_Delete(t *testing.T) {
	repo := newFakeBoardRepository()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, staffIdentity(), CreateInput{
		Name:        "Retro Computing",
		Description: "desc",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	err = service.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
